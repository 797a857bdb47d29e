package pool

import (
	"context"

	"lever/core"
	"lever/pkg/id"
	"lever/pkg/lever"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func (s *poolService) Withdraw(ctx context.Context, userID, assetID string, shares decimal.Decimal) (decimal.Decimal, error) {
	if err := s.enter(); err != nil {
		return decimal.Zero, err
	}
	defer s.leave()

	log := logger.FromContext(ctx).WithField("action", "withdraw")

	shares = shares.Truncate(lever.SharesPrecision)
	if !shares.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	market, err := s.requireOpenMarket(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	now := s.clock()
	var amount decimal.Decimal

	err = s.db.Tx(func(tx *db.DB) error {
		if err := s.accrue(ctx, market, now); err != nil {
			return err
		}

		supply, err := s.supplies.Find(ctx, userID, assetID)
		if err != nil {
			return err
		}

		if supply.ID == 0 || !supply.Shares.IsPositive() {
			return core.ErrSupplyNotFound
		}

		if shares.GreaterThan(supply.Shares) {
			return core.ErrRedeemNotAllowed
		}

		amount = lever.AmountForShares(market, shares)
		if !amount.IsPositive() {
			return core.ErrInvalidAmount
		}

		if amount.GreaterThan(market.TotalCash) {
			return core.ErrInsufficientLiquidity
		}

		// the account must stay collateralized after the withdrawal
		collateralValue, borrowValue, err := s.accounts.AccountLiquidity(ctx, userID)
		if err != nil {
			return err
		}

		if borrowValue.IsPositive() {
			price, err := s.oracle.GetPrice(ctx, assetID)
			if err != nil {
				return err
			}

			withdrawnValue := amount.Mul(price).Mul(market.CollateralFactor).Truncate(core.PriceDecimals)
			if borrowValue.GreaterThan(collateralValue.Sub(withdrawnValue)) {
				return core.ErrInsufficientCollaterals
			}
		}

		supply.Shares = supply.Shares.Sub(shares)
		if err := s.supplies.Update(ctx, tx, supply); err != nil {
			return err
		}

		market.TotalShares = market.TotalShares.Sub(shares).Truncate(lever.MaxPrecision)
		market.TotalCash = market.TotalCash.Sub(amount).Truncate(lever.MaxPrecision)
		if err := s.markets.Update(ctx, tx, market); err != nil {
			return err
		}

		op := &core.Operation{
			TraceID: id.GenTraceID(),
			UserID:  userID,
			Scope:   core.OSWithdraw,
			AssetID: assetID,
			Amount:  amount,
		}
		if err := op.PutData(map[string]interface{}{"shares": shares}); err != nil {
			return err
		}
		if err := s.operations.Create(ctx, tx, op); err != nil {
			return err
		}

		return s.ledger.Push(ctx, op.TraceID, userID, assetID, amount)
	})
	if err != nil {
		return decimal.Zero, err
	}

	log.WithField("amount", amount).Infoln("withdraw completed")
	return amount, nil
}
