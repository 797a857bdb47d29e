package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateCurve maps utilization to a per-second borrow rate.
//
// Update is invoked once per accrual before the rate is read; stateless
// curves treat it as a no-op. Curves never multiply by elapsed time or
// outstanding principal themselves.
type RateCurve interface {
	BorrowRatePerSecond(ctx context.Context, utilization decimal.Decimal) (decimal.Decimal, error)
	Update(ctx context.Context, utilization decimal.Decimal, at time.Time) error
}
