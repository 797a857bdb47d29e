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

func (s *poolService) Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := s.enter(); err != nil {
		return decimal.Zero, err
	}
	defer s.leave()

	log := logger.FromContext(ctx).WithField("action", "deposit")

	amount = amount.Truncate(lever.SharesPrecision)
	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	market, err := s.requireOpenMarket(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	now := s.clock()
	var shares decimal.Decimal

	err = s.db.Tx(func(tx *db.DB) error {
		if err := s.accrue(ctx, market, now); err != nil {
			return err
		}

		// share price comes off the pool balance before the transfer lands
		shares = lever.SharesForDeposit(market, amount)
		if !shares.IsPositive() {
			return core.ErrInvalidAmount
		}

		supply, err := s.supplies.Find(ctx, userID, assetID)
		if err != nil {
			return err
		}

		supply.Shares = supply.Shares.Add(shares)
		if supply.ID == 0 {
			if err := s.supplies.Create(ctx, tx, supply); err != nil {
				return err
			}
		} else if err := s.supplies.Update(ctx, tx, supply); err != nil {
			return err
		}

		market.TotalShares = market.TotalShares.Add(shares).Truncate(lever.MaxPrecision)
		market.TotalCash = market.TotalCash.Add(amount).Truncate(lever.MaxPrecision)
		if err := s.markets.Update(ctx, tx, market); err != nil {
			return err
		}

		op := &core.Operation{
			TraceID: id.GenTraceID(),
			UserID:  userID,
			Scope:   core.OSDeposit,
			AssetID: assetID,
			Amount:  amount,
		}
		if err := op.PutData(map[string]interface{}{"shares": shares}); err != nil {
			return err
		}
		if err := s.operations.Create(ctx, tx, op); err != nil {
			return err
		}

		// inbound transfer is pulled last; a failure rolls everything back
		return s.ledger.Pull(ctx, op.TraceID, userID, assetID, amount)
	})
	if err != nil {
		return decimal.Zero, err
	}

	log.WithField("shares", shares).Infoln("deposit completed")
	return shares, nil
}
