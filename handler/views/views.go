package views

import (
	"lever/core"
	"lever/pkg/lever"

	"github.com/shopspring/decimal"
)

// Market market view with annualized rates
type Market struct {
	core.Market
	SupplyAPY decimal.Decimal `json:"supply_apy"`
	BorrowAPY decimal.Decimal `json:"borrow_apy"`
	Suppliers int64           `json:"suppliers"`
	Borrowers int64           `json:"borrowers"`
}

// NewMarket builds the market view off the cached per-second rates
func NewMarket(market *core.Market, suppliers, borrowers int64) *Market {
	return &Market{
		Market:    *market,
		SupplyAPY: market.SupplyRatePerSecond.Mul(lever.SecondsPerYear).Truncate(8),
		BorrowAPY: market.BorrowRatePerSecond.Mul(lever.SecondsPerYear).Truncate(8),
		Suppliers: suppliers,
		Borrowers: borrowers,
	}
}

// Supply supply view
type Supply struct {
	core.Supply
	Amount decimal.Decimal `json:"amount"`
	Price  decimal.Decimal `json:"price"`
}

// Borrow borrow view
type Borrow struct {
	core.Borrow
	Balance decimal.Decimal `json:"balance"`
	Price   decimal.Decimal `json:"price"`
}

// Account account view
type Account struct {
	UserID          string          `json:"user_id"`
	CollateralValue decimal.Decimal `json:"collateral_value"`
	BorrowValue     decimal.Decimal `json:"borrow_value"`
	HealthFactor    decimal.Decimal `json:"health_factor"`
}
