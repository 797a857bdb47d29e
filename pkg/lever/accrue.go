package lever

import (
	"context"
	"time"

	"lever/core"
	"lever/pkg/number"

	"github.com/shopspring/decimal"
)

// AccrueInterest advances the market's borrow index over the time elapsed
// since the last accrual.
//
// The first call only seeds the index at 1 and stamps the clock; no prior
// elapsed time is meaningful. Within the same timestamp the call is a
// no-op, so repeated accruals in one action are safe.
//
// interest   = total_borrows * rate_per_second * elapsed
// new_index  = index * (1 + rate_per_second * elapsed), rounded up
func AccrueInterest(ctx context.Context, m *core.Market, curve core.RateCurve, now time.Time) error {
	if !m.BorrowIndex.IsPositive() {
		m.BorrowIndex = One
	}

	if m.AccruedAt.IsZero() {
		m.AccruedAt = now
		return refreshRates(ctx, m, curve)
	}

	elapsed := now.Unix() - m.AccruedAt.Unix()
	if elapsed <= 0 {
		return nil
	}

	utilization := UtilizationRate(m.TotalCash, m.TotalBorrows, m.Reserves)
	if err := curve.Update(WithPool(ctx, m.AssetID), utilization, now); err != nil {
		return err
	}

	rate, err := curve.BorrowRatePerSecond(ctx, utilization)
	if err != nil {
		return err
	}

	timesRate := rate.Mul(decimal.NewFromInt(elapsed))
	interest := m.TotalBorrows.Mul(timesRate).Truncate(MaxPrecision)

	m.TotalBorrows = m.TotalBorrows.Add(interest)
	m.Reserves = m.Reserves.Add(interest.Mul(m.ReserveFactor).Truncate(MaxPrecision))
	m.BorrowIndex = m.BorrowIndex.Add(number.Ceil(timesRate.Mul(m.BorrowIndex), MaxPrecision))
	m.AccruedAt = now

	return refreshRates(ctx, m, curve)
}

func refreshRates(ctx context.Context, m *core.Market, curve core.RateCurve) error {
	utilization := UtilizationRate(m.TotalCash, m.TotalBorrows, m.Reserves)
	rate, err := curve.BorrowRatePerSecond(ctx, utilization)
	if err != nil {
		return err
	}

	m.UtilizationRate = utilization
	m.ExchangeRate = CurExchangeRate(m)
	m.BorrowRatePerSecond = rate
	m.SupplyRatePerSecond = GetSupplyRatePerSecond(utilization, rate, m.ReserveFactor)

	return nil
}

type poolKey struct{}

// WithPool marks ctx as driven by the named pool; the adaptive curve only
// accepts updates from the pool it is bound to.
func WithPool(ctx context.Context, assetID string) context.Context {
	return context.WithValue(ctx, poolKey{}, assetID)
}

// PoolFrom the pool driving the current accrual, if any
func PoolFrom(ctx context.Context) string {
	v, _ := ctx.Value(poolKey{}).(string)
	return v
}
