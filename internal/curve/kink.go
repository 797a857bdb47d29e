package curve

import (
	"context"

	"lever/pkg/lever"

	"github.com/shopspring/decimal"
)

// Kink two-slope curve, steeper above the kink point.
//
// below: base + multiplier*u
// above: (base + multiplier*kink) + jump_multiplier*(u - kink)
//
// u == kink takes the low side; both formulas agree there by construction.
type Kink struct {
	nopTick

	Base           decimal.Decimal
	Multiplier     decimal.Decimal
	JumpMultiplier decimal.Decimal
	Kink           decimal.Decimal
}

func (c *Kink) BorrowRatePerSecond(ctx context.Context, utilization decimal.Decimal) (decimal.Decimal, error) {
	u := clampUtilization(utilization)

	if c.Kink.IsZero() || u.LessThanOrEqual(c.Kink) {
		annual := c.Base.Add(c.Multiplier.Mul(u)).Truncate(lever.MaxPrecision)
		return perSecond(annual), nil
	}

	normal := c.Base.Add(c.Multiplier.Mul(c.Kink))
	excess := u.Sub(c.Kink)
	annual := normal.Add(c.JumpMultiplier.Mul(excess)).Truncate(lever.MaxPrecision)

	return perSecond(annual), nil
}
