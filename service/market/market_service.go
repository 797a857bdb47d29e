package market

import (
	"context"
	"time"

	"lever/core"
	"lever/internal/curve"
	"lever/pkg/id"
	"lever/pkg/lever"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

type marketService struct {
	db         *db.DB
	system     *core.System
	markets    core.IMarketStore
	operations core.IOperationStore
	rateOracle core.IRateOracleService
}

// New new market service
func New(
	db *db.DB,
	system *core.System,
	markets core.IMarketStore,
	operations core.IOperationStore,
	rateOracle core.IRateOracleService,
) core.IMarketService {
	return &marketService{
		db:         db,
		system:     system,
		markets:    markets,
		operations: operations,
		rateOracle: rateOracle,
	}
}

func (s *marketService) Accrue(ctx context.Context, assetID string, at time.Time) error {
	log := logger.FromContext(ctx).WithField("service", "market")

	market, err := s.markets.Find(ctx, assetID)
	if err != nil {
		log.WithError(err).Errorln("markets.Find")
		return err
	}

	if market.ID == 0 {
		return core.ErrMarketNotFound
	}

	return s.db.Tx(func(tx *db.DB) error {
		c := curve.New(market, s.rateOracle)
		if err := lever.AccrueInterest(ctx, market, c, at); err != nil {
			return err
		}

		return s.markets.Update(ctx, tx, market)
	})
}

func (s *marketService) ListMarket(ctx context.Context, operator string, market *core.Market) error {
	log := logger.FromContext(ctx).WithField("service", "market")

	if !s.system.IsAdmin(operator) {
		return core.ErrOperationForbidden
	}

	if err := validateMarket(market); err != nil {
		return err
	}

	existing, err := s.markets.Find(ctx, market.AssetID)
	if err != nil {
		return err
	}
	if existing.ID > 0 {
		return core.ErrMarketExists
	}

	market.BorrowIndex = lever.One
	market.Status = core.MarketStatusOpen

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.markets.Create(ctx, tx, market); err != nil {
			return err
		}

		return s.adminOperation(ctx, tx, operator, "list_market", market)
	}); err != nil {
		log.WithError(err).Errorln("markets.Create")
		return err
	}

	log.WithField("symbol", market.Symbol).Infoln("market listed")
	return nil
}

func (s *marketService) UpdateMarket(ctx context.Context, operator string, updated *core.Market) error {
	if !s.system.IsAdmin(operator) {
		return core.ErrOperationForbidden
	}

	market, err := s.markets.Find(ctx, updated.AssetID)
	if err != nil {
		return err
	}
	if market.ID == 0 {
		return core.ErrMarketNotFound
	}

	market.CollateralFactor = updated.CollateralFactor
	market.LiquidationBonus = updated.LiquidationBonus
	market.ReserveFactor = updated.ReserveFactor
	market.CurveKind = updated.CurveKind
	market.BaseRate = updated.BaseRate
	market.Multiplier = updated.Multiplier
	market.JumpMultiplier = updated.JumpMultiplier
	market.Kink = updated.Kink
	market.ExpCoeff = updated.ExpCoeff
	market.ExpScale = updated.ExpScale
	market.MinRate = updated.MinRate
	market.MaxRate = updated.MaxRate
	market.MaxStepRate = updated.MaxStepRate
	market.LowerBand = updated.LowerBand
	market.UpperBand = updated.UpperBand
	market.NeutralRate = updated.NeutralRate

	if err := validateMarket(market); err != nil {
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.markets.Update(ctx, tx, market); err != nil {
			return err
		}

		return s.adminOperation(ctx, tx, operator, "update_market", market)
	})
}

func (s *marketService) CloseMarket(ctx context.Context, operator string, assetID string) error {
	return s.setStatus(ctx, operator, assetID, core.MarketStatusClosed, "close_market")
}

func (s *marketService) OpenMarket(ctx context.Context, operator string, assetID string) error {
	return s.setStatus(ctx, operator, assetID, core.MarketStatusOpen, "open_market")
}

func (s *marketService) setStatus(ctx context.Context, operator, assetID string, status core.MarketStatus, action string) error {
	if !s.system.IsAdmin(operator) {
		return core.ErrOperationForbidden
	}

	market, err := s.markets.Find(ctx, assetID)
	if err != nil {
		return err
	}
	if market.ID == 0 {
		return core.ErrMarketNotFound
	}

	market.Status = status

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.markets.Update(ctx, tx, market); err != nil {
			return err
		}

		return s.adminOperation(ctx, tx, operator, action, market)
	})
}

// adminOperation emits the structured notification record every admin
// mutation produces for off-chain observers
func (s *marketService) adminOperation(ctx context.Context, tx *db.DB, operator, action string, market *core.Market) error {
	op := &core.Operation{
		TraceID: id.GenTraceID(),
		UserID:  operator,
		Scope:   core.OSMarketAdmin,
		AssetID: market.AssetID,
	}

	if err := op.PutData(map[string]interface{}{
		"action": action,
		"market": market,
	}); err != nil {
		return err
	}

	return s.operations.Create(ctx, tx, op)
}

func validateMarket(m *core.Market) error {
	if m.AssetID == "" || m.Symbol == "" {
		return core.ErrInvalidParams
	}

	if m.CollateralFactor.IsNegative() || m.CollateralFactor.GreaterThan(lever.CollateralFactorMax) {
		return core.ErrInvalidParams
	}

	if m.LiquidationBonus.IsNegative() || m.LiquidationBonus.GreaterThan(lever.LiquidationBonusMax) {
		return core.ErrInvalidParams
	}

	if m.ReserveFactor.IsNegative() || m.ReserveFactor.GreaterThan(lever.ReserveFactorMax) {
		return core.ErrInvalidParams
	}

	return curve.ValidateParams(m)
}
