package curve

import (
	"context"
	"testing"

	"lever/core"
	"lever/pkg/lever"
	"lever/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func annualized(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(lever.SecondsPerYear)
}

func TestNewPicksVariant(t *testing.T) {
	oracle := &fakeRateOracle{}

	for kind, want := range map[core.CurveKind]core.RateCurve{
		core.CurveLinear:      &Linear{},
		core.CurveKink:        &Kink{},
		core.CurveExponential: &Exponential{},
		core.CurveAdaptive:    &Adaptive{},
		core.CurveOracle:      &Oracle{},
	} {
		got := New(&core.Market{CurveKind: kind}, oracle)
		assert.IsType(t, want, got)
	}

	// unknown kinds fall back to the kinked curve
	assert.IsType(t, &Kink{}, New(&core.Market{CurveKind: "whatever"}, oracle))
}

func TestLinear(t *testing.T) {
	ctx := context.Background()
	c := &Linear{Base: number.Decimal("0.02"), Slope: number.Decimal("0.2")}

	base, err := c.BorrowRatePerSecond(ctx, decimal.Zero)
	require.Nil(t, err)
	assert.True(t, annualized(base).Sub(number.Decimal("0.02")).Abs().LessThan(number.Decimal("0.0000001")))

	full, err := c.BorrowRatePerSecond(ctx, lever.One)
	require.Nil(t, err)
	assert.True(t, annualized(full).Sub(number.Decimal("0.22")).Abs().LessThan(number.Decimal("0.0000001")))

	// utilization is clamped, not extrapolated
	over, err := c.BorrowRatePerSecond(ctx, number.Decimal("3"))
	require.Nil(t, err)
	assert.True(t, over.Equal(full))
}

func TestKink(t *testing.T) {
	ctx := context.Background()
	c := &Kink{
		Base:           number.Decimal("0.02"),
		Multiplier:     number.Decimal("0.1"),
		JumpMultiplier: number.Decimal("1"),
		Kink:           number.Decimal("0.8"),
	}

	// below the kink: base + multiplier*u
	half, err := c.BorrowRatePerSecond(ctx, number.Decimal("0.5"))
	require.Nil(t, err)
	assert.True(t, annualized(half).Sub(number.Decimal("0.07")).Abs().LessThan(number.Decimal("0.0000001")))

	// the kink point itself takes the low side
	atKink, err := c.BorrowRatePerSecond(ctx, number.Decimal("0.8"))
	require.Nil(t, err)
	assert.True(t, annualized(atKink).Sub(number.Decimal("0.1")).Abs().LessThan(number.Decimal("0.0000001")))

	// above: the jump slope takes over
	full, err := c.BorrowRatePerSecond(ctx, lever.One)
	require.Nil(t, err)
	assert.True(t, annualized(full).Sub(number.Decimal("0.3")).Abs().LessThan(number.Decimal("0.0000001")))

	// steeper above the kink than below
	low := annualized(atKink).Sub(annualized(half))
	high := annualized(full).Sub(annualized(atKink))
	assert.True(t, high.GreaterThan(low))
}

func TestKinkZeroKink(t *testing.T) {
	ctx := context.Background()
	c := &Kink{Base: number.Decimal("0.02"), Multiplier: number.Decimal("0.1")}

	// a zero kink degrades to the plain linear formula
	rate, err := c.BorrowRatePerSecond(ctx, number.Decimal("0.5"))
	require.Nil(t, err)
	assert.True(t, annualized(rate).Sub(number.Decimal("0.07")).Abs().LessThan(number.Decimal("0.0000001")))
}

func TestExponential(t *testing.T) {
	ctx := context.Background()
	c := &Exponential{
		Base:  number.Decimal("0.01"),
		Coeff: number.Decimal("0.05"),
		Scale: number.Decimal("2"),
	}

	// at zero utilization the series vanishes
	base, err := c.BorrowRatePerSecond(ctx, decimal.Zero)
	require.Nil(t, err)
	assert.True(t, annualized(base).Sub(number.Decimal("0.01")).Abs().LessThan(number.Decimal("0.0000001")))

	// strictly increasing in utilization
	half, err := c.BorrowRatePerSecond(ctx, number.Decimal("0.5"))
	require.Nil(t, err)
	full, err := c.BorrowRatePerSecond(ctx, lever.One)
	require.Nil(t, err)
	assert.True(t, half.GreaterThan(base))
	assert.True(t, full.GreaterThan(half))

	// x == 2 edge: the 5-term series reads 6.2666..., a bit under e^2-1
	series := annualized(full).Sub(number.Decimal("0.01")).Div(number.Decimal("0.05"))
	assert.True(t, series.GreaterThan(number.Decimal("6.26")))
	assert.True(t, series.LessThan(number.Decimal("6.39")))
}

type fakeRateOracle struct {
	rate decimal.Decimal
	err  error
}

func (f *fakeRateOracle) ReferenceRate(ctx context.Context) (decimal.Decimal, error) {
	return f.rate, f.err
}

func TestOracleCurve(t *testing.T) {
	ctx := context.Background()

	reference := &fakeRateOracle{rate: number.Decimal("0.03")}
	c := &Oracle{Base: number.Decimal("0.01"), Multiplier: number.Decimal("0.1"), Reference: reference}

	rate, err := c.BorrowRatePerSecond(ctx, number.Decimal("0.5"))
	require.Nil(t, err)
	// 0.01 + 0.1*0.5 + 0.03
	assert.True(t, annualized(rate).Sub(number.Decimal("0.09")).Abs().LessThan(number.Decimal("0.0000001")))

	// the reference rate is read live; a failed read aborts accrual
	reference.err = core.ErrInvalidPrice
	_, err = c.BorrowRatePerSecond(ctx, number.Decimal("0.5"))
	assert.Equal(t, core.ErrInvalidPrice, err)
}

func TestValidateParams(t *testing.T) {
	valid := &core.Market{
		CurveKind:  core.CurveKink,
		BaseRate:   number.Decimal("0.02"),
		Multiplier: number.Decimal("0.1"),
		Kink:       number.Decimal("0.8"),
	}
	assert.Nil(t, ValidateParams(valid))

	bad := *valid
	bad.Kink = number.Decimal("1.5")
	assert.Equal(t, core.ErrInvalidParams, ValidateParams(&bad))

	bad = *valid
	bad.BaseRate = number.Decimal("-0.01")
	assert.Equal(t, core.ErrInvalidParams, ValidateParams(&bad))

	exp := &core.Market{CurveKind: core.CurveExponential, ExpScale: number.Decimal("2.5")}
	assert.Equal(t, core.ErrInvalidParams, ValidateParams(exp))

	adaptive := &core.Market{
		CurveKind:   core.CurveAdaptive,
		MinRate:     number.Decimal("0.01"),
		MaxRate:     number.Decimal("0.5"),
		MaxStepRate: number.Decimal("0.05"),
		LowerBand:   number.Decimal("0.4"),
		UpperBand:   number.Decimal("0.9"),
		NeutralRate: number.Decimal("0.05"),
	}
	assert.Nil(t, ValidateParams(adaptive))

	adaptive.UpperBand = number.Decimal("0.2")
	assert.Equal(t, core.ErrInvalidParams, ValidateParams(adaptive))

	unknown := &core.Market{CurveKind: "whatever"}
	assert.Equal(t, core.ErrInvalidParams, ValidateParams(unknown))
}
