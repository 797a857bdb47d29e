package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceDecimals the oracle quotes USD prices at this fixed scale
const PriceDecimals int32 = 8

// IPriceOracleService reads USD prices from the external price feed.
//
// A missing price is an error, never a zero valuation.
type IPriceOracleService interface {
	GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error)
}

// IRateOracleService reads the external reference rate consumed by the
// oracle-driven curve. Reads are live, never cached.
type IRateOracleService interface {
	ReferenceRate(ctx context.Context) (decimal.Decimal, error)
}
