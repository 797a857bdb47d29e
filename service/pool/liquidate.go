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
	"github.com/sirupsen/logrus"
)

func (s *poolService) Liquidate(ctx context.Context, liquidatorID, borrowerID, repayAssetID, collateralAssetID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := s.enter(); err != nil {
		return decimal.Zero, err
	}
	defer s.leave()

	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"action":   "liquidation",
		"borrower": borrowerID,
	})

	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	borrowMarket, err := s.requireOpenMarket(ctx, repayAssetID)
	if err != nil {
		return decimal.Zero, err
	}

	collateralMarket, err := s.requireOpenMarket(ctx, collateralAssetID)
	if err != nil {
		return decimal.Zero, err
	}

	now := s.clock()
	var seized decimal.Decimal

	err = s.db.Tx(func(tx *db.DB) error {
		if err := s.accrue(ctx, borrowMarket, now); err != nil {
			return err
		}
		if err := s.accrue(ctx, collateralMarket, now); err != nil {
			return err
		}

		// equality is healthy; only strictly undercollateralized accounts
		// may be liquidated
		collateralValue, borrowValue, err := s.accounts.AccountLiquidity(ctx, borrowerID)
		if err != nil {
			return err
		}

		if collateralValue.GreaterThanOrEqual(borrowValue) {
			return core.ErrLiquidationNotAllowed
		}

		borrow, err := s.borrows.Find(ctx, borrowerID, repayAssetID)
		if err != nil {
			return err
		}

		debt := lever.BorrowBalance(borrow, borrowMarket)
		if !debt.IsPositive() {
			return core.ErrBorrowNotFound
		}

		supply, err := s.supplies.Find(ctx, borrowerID, collateralAssetID)
		if err != nil {
			return err
		}

		if !supply.Shares.IsPositive() {
			return core.ErrSupplyNotFound
		}

		repaid := number.Min(amount, debt)

		// price the seizure before pulling the repayment so a failed
		// oracle read aborts the call with no external value moved
		repayPrice, err := s.oracle.GetPrice(ctx, repayAssetID)
		if err != nil {
			return err
		}

		collateralPrice, err := s.oracle.GetPrice(ctx, collateralAssetID)
		if err != nil {
			return err
		}

		seized = lever.SeizedShares(collateralMarket, supply.Shares, repaid, repayPrice, collateralPrice)
		if !seized.IsPositive() {
			return core.ErrLiquidationNotAllowed
		}

		traceID := id.GenTraceID()
		if err := s.ledger.Pull(ctx, traceID, liquidatorID, repayAssetID, repaid); err != nil {
			return err
		}

		// the collateral leg is a pure share reassignment, no token movement
		supply.Shares = supply.Shares.Sub(seized)
		if err := s.supplies.Update(ctx, tx, supply); err != nil {
			return err
		}

		liquidatorSupply, err := s.supplies.Find(ctx, liquidatorID, collateralAssetID)
		if err != nil {
			return err
		}

		liquidatorSupply.Shares = liquidatorSupply.Shares.Add(seized)
		if liquidatorSupply.ID == 0 {
			if err := s.supplies.Create(ctx, tx, liquidatorSupply); err != nil {
				return err
			}
		} else if err := s.supplies.Update(ctx, tx, liquidatorSupply); err != nil {
			return err
		}

		borrow.Principal = debt.Sub(repaid)
		if borrow.Principal.IsPositive() {
			borrow.InterestIndex = borrowMarket.BorrowIndex
		} else {
			borrow.Principal = decimal.Zero
			borrow.InterestIndex = decimal.Zero
		}
		if err := s.borrows.Update(ctx, tx, borrow); err != nil {
			return err
		}

		borrowMarket.TotalBorrows = borrowMarket.TotalBorrows.Sub(repaid).Truncate(lever.MaxPrecision)
		if borrowMarket.TotalBorrows.IsNegative() {
			borrowMarket.TotalBorrows = decimal.Zero
		}
		borrowMarket.TotalCash = borrowMarket.TotalCash.Add(repaid).Truncate(lever.MaxPrecision)
		if err := s.markets.Update(ctx, tx, borrowMarket); err != nil {
			return err
		}

		if err := s.markets.Update(ctx, tx, collateralMarket); err != nil {
			return err
		}

		op := &core.Operation{
			TraceID: traceID,
			UserID:  liquidatorID,
			Scope:   core.OSLiquidation,
			AssetID: repayAssetID,
			Amount:  repaid,
		}
		if err := op.PutData(map[string]interface{}{
			"borrower":         borrowerID,
			"collateral_asset": collateralAssetID,
			"seized_shares":    seized,
		}); err != nil {
			return err
		}

		return s.operations.Create(ctx, tx, op)
	})
	if err != nil {
		return decimal.Zero, err
	}

	log.WithField("seized_shares", seized).Infoln("liquidation completed")
	return seized, nil
}
