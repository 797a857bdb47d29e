package lever

import (
	"testing"

	"lever/core"
	"lever/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSeizedShares(t *testing.T) {
	collateral := &core.Market{
		TotalCash:        number.Decimal("1000"),
		TotalShares:      number.Decimal("1000"),
		LiquidationBonus: number.Decimal("0.1"),
	}

	// repay 100 USDT at $1 against ETH at $2000:
	// seized value 110, 0.055 ETH, exchange rate 1 -> 0.055 shares
	seized := SeizedShares(collateral, number.Decimal("10"), number.Decimal("100"), One, number.Decimal("2000"))
	assert.Equal(t, "0.055", seized.String())

	// clamped to the borrower's held shares
	seized = SeizedShares(collateral, number.Decimal("0.01"), number.Decimal("100"), One, number.Decimal("2000"))
	assert.Equal(t, "0.01", seized.String())

	// a bad collateral price seizes nothing
	seized = SeizedShares(collateral, number.Decimal("10"), number.Decimal("100"), One, decimal.Zero)
	assert.True(t, seized.IsZero())
}

func TestSeizedSharesAppreciated(t *testing.T) {
	// exchange rate 1.25: each share is worth more, fewer get seized
	collateral := &core.Market{
		TotalCash:        number.Decimal("1250"),
		TotalShares:      number.Decimal("1000"),
		LiquidationBonus: number.Decimal("0.08"),
	}

	seized := SeizedShares(collateral, number.Decimal("100"), number.Decimal("54"), number.Decimal("2"), number.Decimal("1"))
	// 54*2*1.08 = 116.64 underlying, / 1.25 = 93.312 shares
	assert.Equal(t, "93.312", seized.String())
}
