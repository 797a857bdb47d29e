package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrReentrantCall a guarded entry point was re-entered before the outer call finished
	ErrReentrantCall ErrorCode = 100002

	// ErrMarketNotFound no market
	ErrMarketNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrSupplyNotFound no supply
	ErrSupplyNotFound ErrorCode = 100102
	// ErrBorrowNotFound no borrow
	ErrBorrowNotFound ErrorCode = 100103
	// ErrInsufficientCollaterals insufficient collaterals
	ErrInsufficientCollaterals ErrorCode = 100104
	// ErrInsufficientLiquidity insufficient pool liquidity
	ErrInsufficientLiquidity ErrorCode = 100105
	// ErrRedeemNotAllowed redeem not allowed
	ErrRedeemNotAllowed ErrorCode = 100106
	// ErrLiquidationNotAllowed the position is healthy or otherwise not seizable
	ErrLiquidationNotAllowed ErrorCode = 100107
	// ErrInvalidPrice the oracle has no price for the asset
	ErrInvalidPrice ErrorCode = 100108
	// ErrBorrowNotAllowed borrow not allowed
	ErrBorrowNotAllowed ErrorCode = 100109
	// ErrMarketClosed market closed
	ErrMarketClosed ErrorCode = 100110
	// ErrMarketExists market already listed
	ErrMarketExists ErrorCode = 100111
	// ErrInvalidParams out-of-bound market or curve parameters
	ErrInvalidParams ErrorCode = 100112
	// ErrTransferFailed the external token transfer did not succeed
	ErrTransferFailed ErrorCode = 100113
	// ErrInsufficientReserves withdrawal exceeds the accumulated reserves
	ErrInsufficientReserves ErrorCode = 100114

	// ErrProposalNotFound no proposal
	ErrProposalNotFound ErrorCode = 100200
	// ErrProposalNotReady proposal executed before its delay elapsed
	ErrProposalNotReady ErrorCode = 100201
	// ErrProposalFinished proposal already executed or cancelled
	ErrProposalFinished ErrorCode = 100202
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
