package lever

import (
	"context"
	"testing"
	"time"

	"lever/core"
	"lever/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flatCurve struct {
	rate  decimal.Decimal
	ticks int
}

func (c *flatCurve) BorrowRatePerSecond(ctx context.Context, utilization decimal.Decimal) (decimal.Decimal, error) {
	return c.rate, nil
}

func (c *flatCurve) Update(ctx context.Context, utilization decimal.Decimal, at time.Time) error {
	c.ticks++
	return nil
}

func TestAccrueInterestSeedsIndex(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	m := &core.Market{
		TotalCash:    number.Decimal("100"),
		TotalBorrows: number.Decimal("100"),
		TotalShares:  number.Decimal("200"),
	}

	curve := &flatCurve{rate: number.Decimal("0.000000001")}
	require.Nil(t, AccrueInterest(ctx, m, curve, now))

	// first call stamps the clock without accruing
	assert.Equal(t, "1", m.BorrowIndex.String())
	assert.Equal(t, "100", m.TotalBorrows.String())
	assert.Equal(t, now.Unix(), m.AccruedAt.Unix())
	assert.Equal(t, 0, curve.ticks)

	// cached rates refreshed
	assert.Equal(t, "0.5", m.UtilizationRate.String())
	assert.Equal(t, "1", m.ExchangeRate.String())
	assert.True(t, m.BorrowRatePerSecond.Equal(curve.rate))
}

func TestAccrueInterest(t *testing.T) {
	ctx := context.Background()
	begin := time.Now()

	m := &core.Market{
		TotalCash:     number.Decimal("100"),
		TotalBorrows:  number.Decimal("100"),
		ReserveFactor: number.Decimal("0.2"),
		BorrowIndex:   One,
		AccruedAt:     begin,
	}

	curve := &flatCurve{rate: number.Decimal("0.000000001")}
	require.Nil(t, AccrueInterest(ctx, m, curve, begin.Add(1000*time.Second)))

	// interest = 100 * 1e-9 * 1000
	assert.Equal(t, "100.0001", m.TotalBorrows.String())
	assert.Equal(t, "0.00002", m.Reserves.String())
	assert.Equal(t, "1.000001", m.BorrowIndex.String())
	assert.Equal(t, 1, curve.ticks)
}

func TestAccrueInterestSameInstant(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	m := &core.Market{
		TotalBorrows: number.Decimal("100"),
		BorrowIndex:  One,
		AccruedAt:    now,
	}

	curve := &flatCurve{rate: number.Decimal("0.000000001")}
	require.Nil(t, AccrueInterest(ctx, m, curve, now))
	require.Nil(t, AccrueInterest(ctx, m, curve, now.Add(-time.Minute)))

	// nothing moved, the curve never ticked
	assert.Equal(t, "100", m.TotalBorrows.String())
	assert.Equal(t, "1", m.BorrowIndex.String())
	assert.Equal(t, 0, curve.ticks)
}

func TestAccrueInterestIndexMonotonic(t *testing.T) {
	ctx := context.Background()
	at := time.Now()

	m := &core.Market{
		TotalCash:    number.Decimal("1000"),
		TotalBorrows: number.Decimal("500"),
		BorrowIndex:  One,
		AccruedAt:    at,
	}

	curve := &flatCurve{rate: number.Decimal("0.0000000022196")}
	last := m.BorrowIndex
	for i := 0; i < 20; i++ {
		at = at.Add(3600 * time.Second)
		require.Nil(t, AccrueInterest(ctx, m, curve, at))

		assert.True(t, m.BorrowIndex.GreaterThan(last))
		last = m.BorrowIndex
	}
}

func TestAccrueInterestOneYear(t *testing.T) {
	ctx := context.Background()
	begin := time.Now()

	// 7% annual at 50% utilization on the kinked curve
	perSecond := number.Decimal("0.07").Div(SecondsPerYear).Truncate(MaxPrecision)

	m := &core.Market{
		TotalCash:    number.Decimal("100"),
		TotalBorrows: number.Decimal("100"),
		BorrowIndex:  One,
		AccruedAt:    begin,
	}

	curve := &flatCurve{rate: perSecond}
	require.Nil(t, AccrueInterest(ctx, m, curve, begin.Add(31536000*time.Second)))

	// simple interest over one jump lands just under the annual rate
	interest := m.TotalBorrows.Sub(number.Decimal("100"))
	assert.True(t, interest.GreaterThan(number.Decimal("6.99")))
	assert.True(t, interest.LessThanOrEqual(number.Decimal("7")))

	// the index grew by the same factor debt did
	assert.True(t, m.BorrowIndex.Sub(One).Sub(interest.Div(number.Decimal("100"))).Abs().LessThan(number.Decimal("0.0000000001")))
}
