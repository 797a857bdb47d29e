package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Borrow is one user's debt position in one market.
//
// InterestIndex snapshots the market's borrow index at the last principal
// update; zero means the position carries no debt.
type Borrow struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID        string          `sql:"size:36;unique_index:borrow_idx" json:"user_id"`
	AssetID       string          `sql:"size:36;unique_index:borrow_idx" json:"asset_id"`
	Principal     decimal.Decimal `sql:"type:decimal(32,16)" json:"principal"`
	InterestIndex decimal.Decimal `sql:"type:decimal(32,16);default:0" json:"interest_index"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IBorrowStore borrow store interface
type IBorrowStore interface {
	Create(ctx context.Context, tx *db.DB, borrow *Borrow) error
	Find(ctx context.Context, userID, assetID string) (*Borrow, error)
	FindByUser(ctx context.Context, userID string) ([]*Borrow, error)
	FindByAsset(ctx context.Context, assetID string) ([]*Borrow, error)
	Update(ctx context.Context, tx *db.DB, borrow *Borrow) error
	All(ctx context.Context) ([]*Borrow, error)
	Users(ctx context.Context) ([]string, error)
	CountOfBorrowers(ctx context.Context, assetID string) (int64, error)
}
