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

func (s *poolService) Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	log := logger.FromContext(ctx).WithField("action", "borrow")

	amount = amount.Truncate(lever.SharesPrecision)
	if amount.IsNegative() {
		return core.ErrInvalidAmount
	}

	market, err := s.requireOpenMarket(ctx, assetID)
	if err != nil {
		return err
	}

	now := s.clock()

	// a zero amount only forces an accrual tick and must not touch principal
	if amount.IsZero() {
		return s.db.Tx(func(tx *db.DB) error {
			if err := s.accrue(ctx, market, now); err != nil {
				return err
			}
			return s.markets.Update(ctx, tx, market)
		})
	}

	err = s.db.Tx(func(tx *db.DB) error {
		if err := s.accrue(ctx, market, now); err != nil {
			return err
		}

		if amount.GreaterThan(market.TotalCash) {
			return core.ErrInsufficientLiquidity
		}

		price, err := s.oracle.GetPrice(ctx, assetID)
		if err != nil {
			return err
		}

		collateralValue, borrowValue, err := s.accounts.AccountLiquidity(ctx, userID)
		if err != nil {
			return err
		}

		newBorrowValue := borrowValue.Add(amount.Mul(price).Truncate(core.PriceDecimals))
		if newBorrowValue.GreaterThan(collateralValue) {
			return core.ErrInsufficientCollaterals
		}

		borrow, err := s.borrows.Find(ctx, userID, assetID)
		if err != nil {
			return err
		}

		// roll existing debt forward, then snapshot the fresh index
		borrow.Principal = lever.BorrowBalance(borrow, market).Add(amount)
		borrow.InterestIndex = market.BorrowIndex
		if borrow.ID == 0 {
			if err := s.borrows.Create(ctx, tx, borrow); err != nil {
				return err
			}
		} else if err := s.borrows.Update(ctx, tx, borrow); err != nil {
			return err
		}

		market.TotalBorrows = market.TotalBorrows.Add(amount).Truncate(lever.MaxPrecision)
		market.TotalCash = market.TotalCash.Sub(amount).Truncate(lever.MaxPrecision)
		if err := s.markets.Update(ctx, tx, market); err != nil {
			return err
		}

		op := &core.Operation{
			TraceID: id.GenTraceID(),
			UserID:  userID,
			Scope:   core.OSBorrow,
			AssetID: assetID,
			Amount:  amount,
		}
		if err := s.operations.Create(ctx, tx, op); err != nil {
			return err
		}

		return s.ledger.Push(ctx, op.TraceID, userID, assetID, amount)
	})
	if err != nil {
		return err
	}

	log.WithField("amount", amount).Infoln("borrow completed")
	return nil
}
