package account

import (
	"context"

	"lever/core"
	"lever/pkg/lever"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// MaxHealthFactor reported for accounts with no debt; callers special-case
// zero borrow value instead of dividing by it.
var MaxHealthFactor = decimal.New(1, 16)

type accountService struct {
	markets  core.IMarketStore
	supplies core.ISupplyStore
	borrows  core.IBorrowStore
	oracle   core.IPriceOracleService
}

// New new account service
func New(
	markets core.IMarketStore,
	supplies core.ISupplyStore,
	borrows core.IBorrowStore,
	oracle core.IPriceOracleService,
) core.IAccountService {
	return &accountService{
		markets:  markets,
		supplies: supplies,
		borrows:  borrows,
		oracle:   oracle,
	}
}

func (s *accountService) AccountLiquidity(ctx context.Context, userID string) (decimal.Decimal, decimal.Decimal, error) {
	markets, err := s.markets.AllAsMap(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	collateralValue := decimal.Zero
	supplies, err := s.supplies.FindByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	for _, supply := range supplies {
		if !supply.Shares.IsPositive() {
			continue
		}

		market, ok := markets[supply.AssetID]
		if !ok {
			continue
		}

		price, err := s.oracle.GetPrice(ctx, market.AssetID)
		if err != nil {
			// no price means no valuation, never a zero one
			return decimal.Zero, decimal.Zero, err
		}

		amount := lever.AmountForShares(market, supply.Shares)
		value := amount.Mul(price).Mul(market.CollateralFactor).Truncate(core.PriceDecimals)
		collateralValue = collateralValue.Add(value)
	}

	borrowValue := decimal.Zero
	borrows, err := s.borrows.FindByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	for _, borrow := range borrows {
		market, ok := markets[borrow.AssetID]
		if !ok {
			continue
		}

		debt := lever.BorrowBalance(borrow, market)
		if !debt.IsPositive() {
			continue
		}

		price, err := s.oracle.GetPrice(ctx, market.AssetID)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}

		borrowValue = borrowValue.Add(debt.Mul(price).Truncate(core.PriceDecimals))
	}

	return collateralValue, borrowValue, nil
}

func (s *accountService) HealthFactor(ctx context.Context, userID string) (decimal.Decimal, error) {
	collateralValue, borrowValue, err := s.AccountLiquidity(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	if !borrowValue.IsPositive() {
		return MaxHealthFactor, nil
	}

	return collateralValue.Div(borrowValue).Truncate(core.PriceDecimals), nil
}

func (s *accountService) UnderwaterAccounts(ctx context.Context) ([]*core.Account, error) {
	log := logger.FromContext(ctx).WithField("service", "account")

	users, err := s.borrows.Users(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]*core.Account, 0)
	for _, userID := range users {
		collateralValue, borrowValue, err := s.AccountLiquidity(ctx, userID)
		if err != nil {
			log.WithError(err).WithField("user", userID).Errorln("AccountLiquidity")
			continue
		}

		if collateralValue.GreaterThanOrEqual(borrowValue) {
			continue
		}

		supplies, err := s.supplies.FindByUser(ctx, userID)
		if err != nil {
			continue
		}

		borrows, err := s.borrows.FindByUser(ctx, userID)
		if err != nil {
			continue
		}

		accounts = append(accounts, &core.Account{
			UserID:          userID,
			CollateralValue: collateralValue,
			BorrowValue:     borrowValue,
			HealthFactor:    collateralValue.Div(borrowValue).Truncate(core.PriceDecimals),
			Supplies:        supplies,
			Borrows:         borrows,
		})
	}

	return accounts, nil
}
