package curve

import (
	"context"

	"lever/pkg/lever"

	"github.com/shopspring/decimal"
)

// Linear rate = max(base, base + slope*u)
type Linear struct {
	nopTick

	Base  decimal.Decimal
	Slope decimal.Decimal
}

func (c *Linear) BorrowRatePerSecond(ctx context.Context, utilization decimal.Decimal) (decimal.Decimal, error) {
	u := clampUtilization(utilization)

	annual := c.Base.Add(c.Slope.Mul(u)).Truncate(lever.MaxPrecision)
	if annual.LessThan(c.Base) {
		annual = c.Base
	}

	return perSecond(annual), nil
}
