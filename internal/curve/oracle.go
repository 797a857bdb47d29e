package curve

import (
	"context"

	"lever/core"
	"lever/pkg/lever"

	"github.com/shopspring/decimal"
)

// Oracle rate = base + multiplier*u + reference_rate
//
// The reference rate is read live from the external rate source on every
// query so protocol rates follow a benchmark governance can move
// independently. A failed read aborts the caller's accrual.
type Oracle struct {
	nopTick

	Base       decimal.Decimal
	Multiplier decimal.Decimal
	Reference  core.IRateOracleService
}

func (c *Oracle) BorrowRatePerSecond(ctx context.Context, utilization decimal.Decimal) (decimal.Decimal, error) {
	reference, err := c.Reference.ReferenceRate(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	u := clampUtilization(utilization)
	annual := c.Base.Add(c.Multiplier.Mul(u)).Add(reference).Truncate(lever.MaxPrecision)

	return perSecond(annual), nil
}
