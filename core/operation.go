package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// OperationScope operation scope
type OperationScope string

const (
	// OSDeposit deposit
	OSDeposit OperationScope = "deposit"
	// OSWithdraw withdraw
	OSWithdraw OperationScope = "withdraw"
	// OSBorrow borrow
	OSBorrow OperationScope = "borrow"
	// OSRepay repay
	OSRepay OperationScope = "repay"
	// OSLiquidation liquidation
	OSLiquidation OperationScope = "liquidation"
	// OSMarketAdmin admin market mutation
	OSMarketAdmin OperationScope = "market_admin"
)

func (s OperationScope) String() string {
	return string(s)
}

// Operation is the audit record emitted for every user action and admin
// mutation, consumed by off-chain observers.
type Operation struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index:operation_trace_idx" json:"trace_id"`
	UserID    string          `sql:"size:36;index:operation_user_idx" json:"user_id"`
	Scope     OperationScope  `sql:"size:32" json:"scope"`
	AssetID   string          `sql:"size:36" json:"asset_id"`
	Amount    decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	Data      []byte          `sql:"type:blob" json:"data,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// PutData marshals extra payload into the record
func (o *Operation) PutData(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	o.Data = data
	return nil
}

// IOperationStore operation store interface
type IOperationStore interface {
	Create(ctx context.Context, tx *db.DB, operation *Operation) error
	FindByTrace(ctx context.Context, traceID string) (*Operation, error)
	List(ctx context.Context, userID string, limit int) ([]*Operation, error)
}
