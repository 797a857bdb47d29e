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

func (s *poolService) WithdrawReserves(ctx context.Context, operator, assetID, receiverID string, amount decimal.Decimal) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	log := logger.FromContext(ctx).WithField("action", "withdraw_reserves")

	if !s.system.IsAdmin(operator) {
		return core.ErrOperationForbidden
	}

	amount = amount.Truncate(lever.MaxPrecision)
	if !amount.IsPositive() || receiverID == "" {
		return core.ErrInvalidAmount
	}

	market, err := s.markets.Find(ctx, assetID)
	if err != nil {
		return err
	}

	if market.ID == 0 {
		return core.ErrMarketNotFound
	}

	now := s.clock()

	err = s.db.Tx(func(tx *db.DB) error {
		if err := s.accrue(ctx, market, now); err != nil {
			return err
		}

		if amount.GreaterThan(market.Reserves) {
			return core.ErrInsufficientReserves
		}

		// reserves sit inside the pool cash; both shrink together
		if amount.GreaterThan(market.TotalCash) {
			return core.ErrInsufficientLiquidity
		}

		market.Reserves = market.Reserves.Sub(amount).Truncate(lever.MaxPrecision)
		market.TotalCash = market.TotalCash.Sub(amount).Truncate(lever.MaxPrecision)
		if err := s.markets.Update(ctx, tx, market); err != nil {
			return err
		}

		op := &core.Operation{
			TraceID: id.GenTraceID(),
			UserID:  operator,
			Scope:   core.OSMarketAdmin,
			AssetID: assetID,
			Amount:  amount,
		}
		if err := op.PutData(map[string]interface{}{
			"action":   "withdraw_reserves",
			"receiver": receiverID,
		}); err != nil {
			return err
		}
		if err := s.operations.Create(ctx, tx, op); err != nil {
			return err
		}

		return s.ledger.Push(ctx, op.TraceID, receiverID, assetID, amount)
	})
	if err != nil {
		return err
	}

	log.WithField("amount", amount).Infoln("reserves withdrawn")
	return nil
}
