package curve

import (
	"context"
	"time"

	"lever/core"
	"lever/pkg/lever"

	"github.com/shopspring/decimal"
)

var quarter = decimal.NewFromInt(4)

// Adaptive time-weighted band controller over an annual rate.
//
// Above the upper utilization band the rate climbs proportionally to
// overshoot times elapsed time, below the lower band it decays the same
// way, and inside the band it reverts toward the neutral rate at a
// quarter of the max step. Every adjustment is clamped to [min, max].
//
// State lives on the bound market (AdaptiveRate/AdaptiveAt), so it
// persists with the market row. Only the bound pool may drive updates.
type Adaptive struct {
	Market *core.Market
}

func (c *Adaptive) BorrowRatePerSecond(ctx context.Context, utilization decimal.Decimal) (decimal.Decimal, error) {
	return perSecond(c.current()), nil
}

func (c *Adaptive) Update(ctx context.Context, utilization decimal.Decimal, at time.Time) error {
	if lever.PoolFrom(ctx) != c.Market.AssetID {
		return core.ErrOperationForbidden
	}

	m := c.Market
	rate := c.current()

	if m.AdaptiveAt.IsZero() {
		m.AdaptiveRate = rate
		m.AdaptiveAt = at
		return nil
	}

	elapsed := at.Unix() - m.AdaptiveAt.Unix()
	if elapsed <= 0 {
		return nil
	}

	u := clampUtilization(utilization)
	weight := decimal.NewFromInt(elapsed).Div(lever.SecondsPerYear)

	switch {
	case u.GreaterThan(m.UpperBand):
		overshoot := u.Sub(m.UpperBand)
		step := capStep(overshoot.Mul(weight).Mul(m.MaxStepRate), m.MaxStepRate)
		rate = rate.Add(step)
	case u.LessThan(m.LowerBand):
		deficit := m.LowerBand.Sub(u)
		step := capStep(deficit.Mul(weight).Mul(m.MaxStepRate), m.MaxStepRate)
		rate = rate.Sub(step)
	default:
		revert := capStep(weight.Mul(m.MaxStepRate).Div(quarter), m.MaxStepRate.Div(quarter))
		if gap := m.NeutralRate.Sub(rate); gap.IsPositive() {
			rate = rate.Add(decimal.Min(revert, gap))
		} else {
			rate = rate.Sub(decimal.Min(revert, gap.Neg()))
		}
	}

	if rate.GreaterThan(m.MaxRate) {
		rate = m.MaxRate
	}
	if rate.LessThan(m.MinRate) {
		rate = m.MinRate
	}

	m.AdaptiveRate = rate.Truncate(lever.MaxPrecision)
	m.AdaptiveAt = at

	return nil
}

func (c *Adaptive) current() decimal.Decimal {
	m := c.Market
	rate := m.AdaptiveRate
	if !rate.IsPositive() {
		rate = m.NeutralRate
	}
	if rate.LessThan(m.MinRate) {
		rate = m.MinRate
	}
	if rate.GreaterThan(m.MaxRate) {
		rate = m.MaxRate
	}
	return rate
}

func capStep(step, max decimal.Decimal) decimal.Decimal {
	return decimal.Min(step, max).Truncate(lever.MaxPrecision)
}
