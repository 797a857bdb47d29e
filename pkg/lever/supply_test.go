package lever

import (
	"testing"

	"lever/core"
	"lever/pkg/number"

	"github.com/stretchr/testify/assert"
)

func TestSharesForDeposit(t *testing.T) {
	// empty pool mints 1:1
	m := &core.Market{}
	assert.Equal(t, "100", SharesForDeposit(m, number.Decimal("100")).String())

	// appreciated pool mints fewer shares per unit
	m = &core.Market{
		TotalCash:    number.Decimal("100"),
		TotalBorrows: number.Decimal("25"),
		Reserves:     number.Decimal("5"),
		TotalShares:  number.Decimal("100"),
	}
	shares := SharesForDeposit(m, number.Decimal("12"))
	assert.Equal(t, "10", shares.String())
}

func TestSharesRoundTrip(t *testing.T) {
	m := &core.Market{
		TotalCash:    number.Decimal("3333.33"),
		TotalBorrows: number.Decimal("777.77"),
		TotalShares:  number.Decimal("3690.12345678"),
	}

	amount := number.Decimal("99.87654321")
	shares := SharesForDeposit(m, amount)
	back := AmountForShares(m, shares)

	// both conversions floor, so the round trip never gains and loses
	// at most one share tick worth of underlying
	assert.True(t, back.LessThanOrEqual(amount))

	tick := AmountForShares(m, number.Decimal("0.00000001")).Add(number.Decimal("0.00000001"))
	assert.True(t, amount.Sub(back).LessThanOrEqual(tick))
}

func TestAmountForShares(t *testing.T) {
	m := &core.Market{}
	assert.Equal(t, "5", AmountForShares(m, number.Decimal("5")).String())

	m = &core.Market{
		TotalCash:   number.Decimal("200"),
		TotalShares: number.Decimal("100"),
	}
	assert.Equal(t, "10", AmountForShares(m, number.Decimal("5")).String())
}
