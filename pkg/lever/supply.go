package lever

import (
	"lever/core"

	"github.com/shopspring/decimal"
)

// SharesPrecision user facing share amounts keep 8 decimals
const SharesPrecision int32 = 8

// SharesForDeposit shares minted for a deposit, computed off the pool's
// pre-transfer balance.
//
// shares = amount * total_shares / total_underlying, floored so a deposit
// can never shortchange existing holders. An empty pool mints 1:1.
func SharesForDeposit(m *core.Market, amount decimal.Decimal) decimal.Decimal {
	underlying := TotalUnderlying(m)
	if !m.TotalShares.IsPositive() || !underlying.IsPositive() {
		return amount.Truncate(SharesPrecision)
	}

	return amount.Mul(m.TotalShares).Div(underlying).Truncate(SharesPrecision)
}

// AmountForShares underlying claimable by burning shares
// amount = shares * total_underlying / total_shares, floored
func AmountForShares(m *core.Market, shares decimal.Decimal) decimal.Decimal {
	if !m.TotalShares.IsPositive() {
		return shares
	}

	return shares.Mul(TotalUnderlying(m)).Div(m.TotalShares).Truncate(SharesPrecision)
}
