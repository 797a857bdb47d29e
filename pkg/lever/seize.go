package lever

import (
	"lever/core"
	"lever/pkg/number"

	"github.com/shopspring/decimal"
)

// SeizedShares collateral shares owed to a liquidator for repaying
// repayAmount of debt.
//
// seized_value  = repay_amount * repay_price * (1 + liquidation_bonus)
// seized_amount = seized_value / collateral_price
//
// The result is clamped to the borrower's held shares: an insolvent
// borrower simply yields less than the bonus formula implies.
func SeizedShares(collateralMarket *core.Market, heldShares, repayAmount, repayPrice, collateralPrice decimal.Decimal) decimal.Decimal {
	if !collateralPrice.IsPositive() {
		return decimal.Zero
	}

	repayValue := repayAmount.Mul(repayPrice).Truncate(MaxPrecision)
	seizedValue := repayValue.Mul(One.Add(collateralMarket.LiquidationBonus)).Truncate(MaxPrecision)
	seizedAmount := seizedValue.Div(collateralPrice).Truncate(MaxPrecision)

	exchangeRate := CurExchangeRate(collateralMarket)
	seizedShares := seizedAmount.Div(exchangeRate).Truncate(SharesPrecision)

	return number.Min(seizedShares, heldShares)
}
