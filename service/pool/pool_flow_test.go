package pool

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lever/core"
	"lever/pkg/lever"
	"lever/pkg/number"
	accountservice "lever/service/account"
	borrowstore "lever/store/borrow"
	marketstore "lever/store/market"
	operationstore "lever/store/operation"
	supplystore "lever/store/supply"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapOracle struct {
	prices map[string]decimal.Decimal
}

func (o *mapOracle) GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	price, ok := o.prices[assetID]
	if !ok {
		return decimal.Zero, core.ErrInvalidPrice
	}
	return price, nil
}

// scriptedLedger stands in for the remote token ledger; hooks left nil
// acknowledge the transfer
type scriptedLedger struct {
	pull func(ctx context.Context, traceID, userID, assetID string, amount decimal.Decimal) error
	push func(ctx context.Context, traceID, userID, assetID string, amount decimal.Decimal) error
}

func (l *scriptedLedger) Pull(ctx context.Context, traceID, userID, assetID string, amount decimal.Decimal) error {
	if l.pull != nil {
		return l.pull(ctx, traceID, userID, assetID, amount)
	}
	return nil
}

func (l *scriptedLedger) Push(ctx context.Context, traceID, userID, assetID string, amount decimal.Decimal) error {
	if l.push != nil {
		return l.push(ctx, traceID, userID, assetID, amount)
	}
	return nil
}

type poolEnv struct {
	svc      core.IPoolService
	markets  core.IMarketStore
	supplies core.ISupplyStore
	borrows  core.IBorrowStore
	ledger   *scriptedLedger
	now      time.Time
}

func (env *poolEnv) advance(d time.Duration) {
	env.now = env.now.Add(d)
}

func newPoolEnv(t *testing.T) *poolEnv {
	// a plain ":memory:" DSN gives every pooled connection its own empty
	// database; shared cache keeps migrations visible across connections
	database, err := db.Connect("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.Nil(t, err)
	require.Nil(t, db.Migrate(database))
	t.Cleanup(func() { _ = database.Close() })

	markets := marketstore.New(database)
	supplies := supplystore.New(database)
	borrows := borrowstore.New(database)
	operations := operationstore.New(database)

	oracle := &mapOracle{prices: map[string]decimal.Decimal{"btc": number.Decimal("1")}}
	accounts := accountservice.New(markets, supplies, borrows, oracle)
	ledger := &scriptedLedger{}

	env := &poolEnv{
		markets:  markets,
		supplies: supplies,
		borrows:  borrows,
		ledger:   ledger,
		now:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	env.svc = New(
		database,
		&core.System{Admins: []string{"admin"}},
		markets,
		supplies,
		borrows,
		operations,
		oracle,
		nil,
		accounts,
		ledger,
		WithClock(func() time.Time { return env.now }),
	)

	market := &core.Market{
		AssetID:          "btc",
		Symbol:           "BTC",
		CurveKind:        core.CurveKink,
		BaseRate:         number.Decimal("0.02"),
		Multiplier:       number.Decimal("0.1"),
		JumpMultiplier:   number.Decimal("1"),
		Kink:             number.Decimal("0.5"),
		CollateralFactor: number.Decimal("0.75"),
		LiquidationBonus: number.Decimal("0.08"),
		BorrowIndex:      lever.One,
		AccruedAt:        env.now,
		Status:           core.MarketStatusOpen,
	}
	require.Nil(t, markets.Create(context.Background(), database, market))

	return env
}

func TestWithdrawReentrancyRollsBack(t *testing.T) {
	ctx := context.Background()
	env := newPoolEnv(t)

	_, err := env.svc.Deposit(ctx, "alice", "btc", number.Decimal("10"))
	require.Nil(t, err)

	// the outbound transfer calls back into the pool before acking
	var innerErr error
	env.ledger.push = func(ctx context.Context, traceID, userID, assetID string, amount decimal.Decimal) error {
		_, innerErr = env.svc.Withdraw(ctx, "alice", "btc", number.Decimal("1"))
		return innerErr
	}

	_, err = env.svc.Withdraw(ctx, "alice", "btc", number.Decimal("4"))
	assert.Equal(t, core.ErrReentrantCall, innerErr)
	assert.Equal(t, core.ErrReentrantCall, err)

	// the rejected callback aborts the outer transaction as well
	supply, err := env.supplies.Find(ctx, "alice", "btc")
	require.Nil(t, err)
	assert.True(t, supply.Shares.Equal(number.Decimal("10")))

	market, err := env.markets.Find(ctx, "btc")
	require.Nil(t, err)
	assert.True(t, market.TotalCash.Equal(number.Decimal("10")))
	assert.True(t, market.TotalShares.Equal(number.Decimal("10")))
}

func TestRepayAllAfterOneYear(t *testing.T) {
	ctx := context.Background()
	env := newPoolEnv(t)

	_, err := env.svc.Deposit(ctx, "bob", "btc", number.Decimal("10"))
	require.Nil(t, err)
	require.Nil(t, env.svc.Borrow(ctx, "bob", "btc", number.Decimal("1")))

	env.advance(365 * 24 * time.Hour)

	// oversized amount is the repay-everything sentinel; one year at
	// 2% base plus 10% multiplier on 10% utilization
	repaid, err := env.svc.Repay(ctx, "bob", "btc", number.Decimal("1000"))
	require.Nil(t, err)
	assert.Equal(t, "1.0300000012768", repaid.String())

	borrow, err := env.borrows.Find(ctx, "bob", "btc")
	require.Nil(t, err)
	assert.True(t, borrow.Principal.IsZero())
	assert.True(t, borrow.InterestIndex.IsZero())

	market, err := env.markets.Find(ctx, "btc")
	require.Nil(t, err)
	assert.True(t, market.TotalBorrows.IsZero())

	_, err = env.svc.Repay(ctx, "bob", "btc", number.Decimal("1"))
	assert.Equal(t, core.ErrBorrowNotFound, err)
}

func TestAccrualConservesDebt(t *testing.T) {
	ctx := context.Background()
	env := newPoolEnv(t)

	_, err := env.svc.Deposit(ctx, "bob", "btc", number.Decimal("10"))
	require.Nil(t, err)
	_, err = env.svc.Deposit(ctx, "carol", "btc", number.Decimal("10"))
	require.Nil(t, err)

	require.Nil(t, env.svc.Borrow(ctx, "bob", "btc", number.Decimal("1.5")))
	require.Nil(t, env.svc.Borrow(ctx, "carol", "btc", number.Decimal("0.25")))

	env.advance(100 * 24 * time.Hour)

	// zero-amount borrow only ticks accrual and persists the market
	require.Nil(t, env.svc.Borrow(ctx, "bob", "btc", decimal.Zero))

	market, err := env.markets.Find(ctx, "btc")
	require.Nil(t, err)
	require.True(t, market.TotalBorrows.GreaterThan(number.Decimal("1.75")))

	sum := decimal.Zero
	for _, userID := range []string{"bob", "carol"} {
		borrow, err := env.borrows.Find(ctx, userID, "btc")
		require.Nil(t, err)
		sum = sum.Add(lever.BorrowBalance(borrow, market))
	}

	// per-position balances round up in the pool's favor, so their sum
	// may exceed the pool total by at most one ulp each
	diff := sum.Sub(market.TotalBorrows)
	assert.False(t, diff.IsNegative())
	assert.True(t, diff.LessThanOrEqual(number.Decimal("0.000000000000001")))
}
