package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Supply is one user's share position in one market.
//
// Entries are created on first deposit and zeroed instead of deleted.
type Supply struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID    string          `sql:"size:36;unique_index:supply_idx" json:"user_id"`
	AssetID   string          `sql:"size:36;unique_index:supply_idx" json:"asset_id"`
	Shares    decimal.Decimal `sql:"type:decimal(32,16)" json:"shares"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ISupplyStore supply store interface
type ISupplyStore interface {
	Create(ctx context.Context, tx *db.DB, supply *Supply) error
	Find(ctx context.Context, userID, assetID string) (*Supply, error)
	FindByUser(ctx context.Context, userID string) ([]*Supply, error)
	FindByAsset(ctx context.Context, assetID string) ([]*Supply, error)
	Update(ctx context.Context, tx *db.DB, supply *Supply) error
	All(ctx context.Context) ([]*Supply, error)
	CountOfSuppliers(ctx context.Context, assetID string) (int64, error)
}
