package curve

import (
	"context"
	"testing"
	"time"

	"lever/core"
	"lever/pkg/lever"
	"lever/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adaptiveMarket() *core.Market {
	return &core.Market{
		AssetID:     "asset",
		CurveKind:   core.CurveAdaptive,
		MinRate:     number.Decimal("0.01"),
		MaxRate:     number.Decimal("0.5"),
		MaxStepRate: number.Decimal("0.05"),
		LowerBand:   number.Decimal("0.4"),
		UpperBand:   number.Decimal("0.9"),
		NeutralRate: number.Decimal("0.05"),
	}
}

func TestAdaptiveRejectsForeignPool(t *testing.T) {
	m := adaptiveMarket()
	c := &Adaptive{Market: m}

	err := c.Update(context.Background(), number.Decimal("0.95"), time.Now())
	assert.Equal(t, core.ErrOperationForbidden, err)

	err = c.Update(lever.WithPool(context.Background(), "other"), number.Decimal("0.95"), time.Now())
	assert.Equal(t, core.ErrOperationForbidden, err)

	err = c.Update(lever.WithPool(context.Background(), "asset"), number.Decimal("0.95"), time.Now())
	assert.Nil(t, err)
}

func TestAdaptiveDefaultsToNeutral(t *testing.T) {
	m := adaptiveMarket()
	c := &Adaptive{Market: m}

	rate, err := c.BorrowRatePerSecond(context.Background(), number.Decimal("0.5"))
	require.Nil(t, err)
	assert.True(t, annualized(rate).Sub(m.NeutralRate).Abs().LessThan(number.Decimal("0.0000001")))
}

func TestAdaptiveSaturatesAtMax(t *testing.T) {
	m := adaptiveMarket()
	c := &Adaptive{Market: m}

	ctx := lever.WithPool(context.Background(), "asset")
	at := time.Now()
	require.Nil(t, c.Update(ctx, lever.One, at))

	// pinned at full utilization for years, one year per tick
	for i := 0; i < 120; i++ {
		at = at.Add(31536000 * time.Second)
		require.Nil(t, c.Update(ctx, lever.One, at))
		assert.True(t, m.AdaptiveRate.LessThanOrEqual(m.MaxRate))
	}

	// converged to exactly the cap, never past it
	assert.True(t, m.AdaptiveRate.Equal(m.MaxRate))
}

func TestAdaptiveDecaysToMin(t *testing.T) {
	m := adaptiveMarket()
	c := &Adaptive{Market: m}

	ctx := lever.WithPool(context.Background(), "asset")
	at := time.Now()
	require.Nil(t, c.Update(ctx, number.Decimal("0"), at))

	for i := 0; i < 40; i++ {
		at = at.Add(31536000 * time.Second)
		require.Nil(t, c.Update(ctx, number.Decimal("0"), at))
		assert.True(t, m.AdaptiveRate.GreaterThanOrEqual(m.MinRate))
	}

	assert.True(t, m.AdaptiveRate.Equal(m.MinRate))
}

func TestAdaptiveRevertsToNeutral(t *testing.T) {
	m := adaptiveMarket()
	m.AdaptiveRate = number.Decimal("0.3")
	m.AdaptiveAt = time.Now()
	c := &Adaptive{Market: m}

	ctx := lever.WithPool(context.Background(), "asset")
	at := m.AdaptiveAt

	inBand := number.Decimal("0.6")
	last := m.AdaptiveRate
	for i := 0; i < 50; i++ {
		at = at.Add(31536000 * time.Second)
		require.Nil(t, c.Update(ctx, inBand, at))

		assert.True(t, m.AdaptiveRate.LessThanOrEqual(last))
		// reversion stops at neutral, never overshoots below it
		assert.True(t, m.AdaptiveRate.GreaterThanOrEqual(m.NeutralRate))
		last = m.AdaptiveRate
	}

	assert.True(t, m.AdaptiveRate.Equal(m.NeutralRate))
}

func TestAdaptiveStepIsTimeWeighted(t *testing.T) {
	short := adaptiveMarket()
	long := adaptiveMarket()

	ctx := lever.WithPool(context.Background(), "asset")
	at := time.Now()

	cs := &Adaptive{Market: short}
	cl := &Adaptive{Market: long}
	require.Nil(t, cs.Update(ctx, lever.One, at))
	require.Nil(t, cl.Update(ctx, lever.One, at))

	require.Nil(t, cs.Update(ctx, lever.One, at.Add(time.Hour)))
	require.Nil(t, cl.Update(ctx, lever.One, at.Add(24*time.Hour)))

	// same overshoot, more elapsed time, bigger step
	assert.True(t, long.AdaptiveRate.GreaterThan(short.AdaptiveRate))
}
