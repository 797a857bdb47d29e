package curve

import (
	"context"
	"time"

	"lever/core"
	"lever/pkg/lever"

	"github.com/shopspring/decimal"
)

// New builds the rate curve bound to the market's listed parameters.
//
// All parameters are annual rates; every variant converts to per-second
// on the way out so the accrual engine never cares which one it holds.
func New(m *core.Market, rateOracle core.IRateOracleService) core.RateCurve {
	switch m.CurveKind {
	case core.CurveLinear:
		return &Linear{Base: m.BaseRate, Slope: m.Multiplier}
	case core.CurveExponential:
		return &Exponential{Base: m.BaseRate, Coeff: m.ExpCoeff, Scale: m.ExpScale}
	case core.CurveAdaptive:
		return &Adaptive{Market: m}
	case core.CurveOracle:
		return &Oracle{Base: m.BaseRate, Multiplier: m.Multiplier, Reference: rateOracle}
	default:
		return &Kink{
			Base:           m.BaseRate,
			Multiplier:     m.Multiplier,
			JumpMultiplier: m.JumpMultiplier,
			Kink:           m.Kink,
		}
	}
}

// ValidateParams rejects out-of-bound curve parameters at listing time.
func ValidateParams(m *core.Market) error {
	if m.BaseRate.IsNegative() || m.Multiplier.IsNegative() || m.JumpMultiplier.IsNegative() {
		return core.ErrInvalidParams
	}

	switch m.CurveKind {
	case core.CurveLinear:
	case core.CurveKink:
		if m.Kink.IsNegative() || m.Kink.GreaterThan(lever.One) {
			return core.ErrInvalidParams
		}
	case core.CurveExponential:
		// the 5-term series is only valid for scale*u <= 2 with u <= 1
		if m.ExpCoeff.IsNegative() || m.ExpScale.GreaterThan(lever.ExpScaleMax) {
			return core.ErrInvalidParams
		}
	case core.CurveAdaptive:
		if m.MinRate.IsNegative() ||
			m.MaxRate.LessThan(m.MinRate) ||
			!m.MaxStepRate.IsPositive() ||
			m.LowerBand.GreaterThan(m.UpperBand) ||
			m.UpperBand.GreaterThan(lever.One) {
			return core.ErrInvalidParams
		}
	case core.CurveOracle:
	default:
		return core.ErrInvalidParams
	}

	return nil
}

// perSecond converts an annual rate
func perSecond(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(lever.SecondsPerYear).Truncate(lever.MaxPrecision)
}

// clampUtilization keeps u inside [0, 1]
func clampUtilization(u decimal.Decimal) decimal.Decimal {
	if u.IsNegative() {
		return decimal.Zero
	}
	if u.GreaterThan(lever.One) {
		return lever.One
	}
	return u
}

// nopTick stateless curves ignore the accrual tick
type nopTick struct{}

func (nopTick) Update(ctx context.Context, utilization decimal.Decimal, at time.Time) error {
	return nil
}
