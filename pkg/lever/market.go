package lever

import (
	"lever/core"

	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds per year
	SecondsPerYear = decimal.NewFromInt(31536000)
	// CollateralFactorMax collateral factor upper bound [0, 0.9]
	CollateralFactorMax = decimal.NewFromFloat(0.9)
	// LiquidationBonusMax liquidation bonus upper bound
	LiquidationBonusMax = decimal.NewFromFloat(0.9)
	// ReserveFactorMax reserve factor upper bound
	ReserveFactorMax = decimal.NewFromFloat(0.5)
	// ExpScaleMax the exponential curve's series stays in its valid domain
	// only for exp_scale*u <= 2
	ExpScaleMax = decimal.NewFromInt(2)
	// MaxPrecision max precision
	MaxPrecision int32 = 16
)

// One 1.0 at the ledger's unit scale
var One = decimal.New(1, 0)

// TotalUnderlying the pool's claimable balance
// total_underlying = market.total_cash + market.total_borrows - market.reserves
func TotalUnderlying(m *core.Market) decimal.Decimal {
	return m.TotalCash.Add(m.TotalBorrows).Sub(m.Reserves)
}

// UtilizationRate utilization rate
// utilization_rate = market.total_borrows/(market.total_cash + market.total_borrows - market.reserves)
func UtilizationRate(cash, borrows, reserves decimal.Decimal) decimal.Decimal {
	total := cash.Add(borrows).Sub(reserves)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return borrows.Div(total).Truncate(MaxPrecision)
}

// GetExchangeRate exchange rate of one share to underlying
// exchange_rate = (market.total_cash + market.total_borrows - market.reserves) / market.total_shares
func GetExchangeRate(totalCash, totalBorrows, totalReserves, totalShares decimal.Decimal) decimal.Decimal {
	if !totalShares.IsPositive() {
		return One
	}

	return totalCash.Add(totalBorrows).Sub(totalReserves).Div(totalShares).Truncate(MaxPrecision)
}

// CurExchangeRate current exchange rate of the market
func CurExchangeRate(m *core.Market) decimal.Decimal {
	return GetExchangeRate(m.TotalCash, m.TotalBorrows, m.Reserves, m.TotalShares)
}

// GetSupplyRatePerSecond supply side rate
// supply_rate = utilization * borrow_rate * (1 - reserve_factor)
func GetSupplyRatePerSecond(utilization, borrowRate, reserveFactor decimal.Decimal) decimal.Decimal {
	rateToPool := borrowRate.Mul(One.Sub(reserveFactor))
	return utilization.Mul(rateToPool).Truncate(MaxPrecision)
}
