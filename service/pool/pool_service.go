package pool

import (
	"context"
	"sync/atomic"
	"time"

	"lever/core"
	"lever/internal/curve"
	"lever/pkg/lever"

	"github.com/fox-one/pkg/store/db"
)

type poolService struct {
	db         *db.DB
	system     *core.System
	markets    core.IMarketStore
	supplies   core.ISupplyStore
	borrows    core.IBorrowStore
	operations core.IOperationStore
	oracle     core.IPriceOracleService
	rateOracle core.IRateOracleService
	accounts   core.IAccountService
	ledger     core.TokenLedger

	clock func() time.Time
	// single-entry reentrancy guard over every state-mutating entry point
	busy int32
}

// Option pool service option
type Option func(*poolService)

// WithClock overrides the service clock
func WithClock(clock func() time.Time) Option {
	return func(s *poolService) {
		s.clock = clock
	}
}

// New new pool service
func New(
	db *db.DB,
	system *core.System,
	markets core.IMarketStore,
	supplies core.ISupplyStore,
	borrows core.IBorrowStore,
	operations core.IOperationStore,
	oracle core.IPriceOracleService,
	rateOracle core.IRateOracleService,
	accounts core.IAccountService,
	ledger core.TokenLedger,
	opts ...Option,
) core.IPoolService {
	s := &poolService{
		db:         db,
		system:     system,
		markets:    markets,
		supplies:   supplies,
		borrows:    borrows,
		operations: operations,
		oracle:     oracle,
		rateOracle: rateOracle,
		accounts:   accounts,
		ledger:     ledger,
		clock:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// enter acquires the guard; a token callback re-entering the pool while it
// is held fails here instead of observing half-written state
func (s *poolService) enter() error {
	if !atomic.CompareAndSwapInt32(&s.busy, 0, 1) {
		return core.ErrReentrantCall
	}
	return nil
}

func (s *poolService) leave() {
	atomic.StoreInt32(&s.busy, 0)
}

// requireOpenMarket the asset must be listed and active
func (s *poolService) requireOpenMarket(ctx context.Context, assetID string) (*core.Market, error) {
	market, err := s.markets.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if market.ID == 0 {
		return nil, core.ErrMarketNotFound
	}

	if market.IsClosed() {
		return nil, core.ErrMarketClosed
	}

	return market, nil
}

// accrue interest must land before any balance or share computation
func (s *poolService) accrue(ctx context.Context, market *core.Market, now time.Time) error {
	c := curve.New(market, s.rateOracle)
	return lever.AccrueInterest(ctx, market, c, now)
}
