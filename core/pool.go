package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// IPoolService sequences accrual, validation, ledger mutation and the
// external token transfer for every user action.
type IPoolService interface {
	// Deposit mints shares against the pre-transfer pool balance, then pulls
	// the inbound amount from the depositor
	Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) (shares decimal.Decimal, err error)
	// Withdraw burns shares and pushes the underlying out, keeping the
	// account collateralized
	Withdraw(ctx context.Context, userID, assetID string, shares decimal.Decimal) (amount decimal.Decimal, err error)
	// Borrow draws underlying against the account's collateral; a zero amount
	// only forces an accrual tick
	Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	// Repay pulls at most the current debt; pass an oversized amount to
	// repay everything
	Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) (repaid decimal.Decimal, err error)
	// Liquidate repays part of an underwater borrower's debt and seizes
	// discounted collateral shares for the liquidator
	Liquidate(ctx context.Context, liquidatorID, borrowerID, repayAssetID, collateralAssetID string, amount decimal.Decimal) (seizedShares decimal.Decimal, err error)
	// WithdrawReserves pays accumulated reserves out to the receiver
	WithdrawReserves(ctx context.Context, operator, assetID, receiverID string, amount decimal.Decimal) error
}
