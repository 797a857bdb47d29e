package curve

import (
	"context"

	"lever/pkg/lever"

	"github.com/shopspring/decimal"
)

// Exponential rate = base + coeff*(e^(scale*u) - 1)
//
// e^x - 1 is evaluated with a 5-term Taylor series, valid for x <= 2;
// listing rejects scale > 2 and utilization is clamped to 1, so the
// series never leaves its domain. The series is evaluated as-is at the
// x == 2 edge, truncated toward zero per term.
type Exponential struct {
	nopTick

	Base  decimal.Decimal
	Coeff decimal.Decimal
	Scale decimal.Decimal
}

var taylorDivisors = []decimal.Decimal{
	decimal.NewFromInt(1),
	decimal.NewFromInt(2),
	decimal.NewFromInt(6),
	decimal.NewFromInt(24),
	decimal.NewFromInt(120),
}

func (c *Exponential) BorrowRatePerSecond(ctx context.Context, utilization decimal.Decimal) (decimal.Decimal, error) {
	u := clampUtilization(utilization)
	x := c.Scale.Mul(u).Truncate(lever.MaxPrecision)

	// x + x^2/2 + x^3/6 + x^4/24 + x^5/120
	sum := decimal.Zero
	power := lever.One
	for _, div := range taylorDivisors {
		power = power.Mul(x).Truncate(lever.MaxPrecision)
		sum = sum.Add(power.Div(div).Truncate(lever.MaxPrecision))
	}

	annual := c.Base.Add(c.Coeff.Mul(sum)).Truncate(lever.MaxPrecision)

	return perSecond(annual), nil
}
