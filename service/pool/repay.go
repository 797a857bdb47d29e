package pool

import (
	"context"

	"lever/core"
	"lever/pkg/id"
	"lever/pkg/lever"
	"lever/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func (s *poolService) Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := s.enter(); err != nil {
		return decimal.Zero, err
	}
	defer s.leave()

	log := logger.FromContext(ctx).WithField("action", "repay")

	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	market, err := s.requireOpenMarket(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	now := s.clock()
	var repaid decimal.Decimal

	err = s.db.Tx(func(tx *db.DB) error {
		if err := s.accrue(ctx, market, now); err != nil {
			return err
		}

		borrow, err := s.borrows.Find(ctx, userID, assetID)
		if err != nil {
			return err
		}

		debt := lever.BorrowBalance(borrow, market)
		if !debt.IsPositive() {
			return core.ErrBorrowNotFound
		}

		// an oversized amount is the "repay everything" sentinel
		repaid = number.Min(amount, debt)

		borrow.Principal = debt.Sub(repaid)
		if borrow.Principal.IsPositive() {
			borrow.InterestIndex = market.BorrowIndex
		} else {
			borrow.Principal = decimal.Zero
			borrow.InterestIndex = decimal.Zero
		}
		if err := s.borrows.Update(ctx, tx, borrow); err != nil {
			return err
		}

		market.TotalBorrows = market.TotalBorrows.Sub(repaid).Truncate(lever.MaxPrecision)
		if market.TotalBorrows.IsNegative() {
			market.TotalBorrows = decimal.Zero
		}
		market.TotalCash = market.TotalCash.Add(repaid).Truncate(lever.MaxPrecision)
		if err := s.markets.Update(ctx, tx, market); err != nil {
			return err
		}

		op := &core.Operation{
			TraceID: id.GenTraceID(),
			UserID:  userID,
			Scope:   core.OSRepay,
			AssetID: assetID,
			Amount:  repaid,
		}
		if err := s.operations.Create(ctx, tx, op); err != nil {
			return err
		}

		return s.ledger.Pull(ctx, op.TraceID, userID, assetID, repaid)
	})
	if err != nil {
		return decimal.Zero, err
	}

	log.WithField("amount", repaid).Infoln("repay completed")
	return repaid, nil
}
