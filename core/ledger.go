package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// TokenLedger moves underlying tokens between user wallets and the pool.
//
// Every call is atomic on the remote side; a returned error means no value
// moved and the whole operation must abort. The callee may call back into
// the pool before returning, which is why every state-mutating entry point
// sits behind the reentrancy guard.
// The traceID ties the transfer to the operation that caused it; the
// remote side dedupes on it, so a retried call never moves value twice.
type TokenLedger interface {
	// Pull debits the user's wallet in favor of the pool (transferFrom)
	Pull(ctx context.Context, traceID, userID, assetID string, amount decimal.Decimal) error
	// Push credits the user's wallet from the pool (transfer)
	Push(ctx context.Context, traceID, userID, assetID string, amount decimal.Decimal) error
}
