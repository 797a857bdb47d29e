package lever

import (
	"lever/core"
	"lever/pkg/number"

	"github.com/shopspring/decimal"
)

// BorrowBalance live debt of a borrow position
// balance = borrow.principal * market.borrow_index / borrow.interest_index
//
// A zero interest index means the position carries no debt; interest owed
// is rounded up in the pool's favor.
func BorrowBalance(b *core.Borrow, m *core.Market) decimal.Decimal {
	if !b.Principal.IsPositive() || !b.InterestIndex.IsPositive() {
		return decimal.Zero
	}

	index := m.BorrowIndex
	if !index.IsPositive() {
		index = One
	}

	return number.Ceil(b.Principal.Mul(index).Div(b.InterestIndex), MaxPrecision)
}
