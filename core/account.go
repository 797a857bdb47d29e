package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Account aggregates one user's positions across every market.
type Account struct {
	UserID          string          `json:"user_id"`
	CollateralValue decimal.Decimal `json:"collateral_value"`
	BorrowValue     decimal.Decimal `json:"borrow_value"`
	HealthFactor    decimal.Decimal `json:"health_factor"`
	Supplies        []*Supply       `json:"supplies"`
	Borrows         []*Borrow       `json:"borrows"`
}

// IAccountStore caches account liquidity snapshots
type IAccountStore interface {
	SaveLiquidity(ctx context.Context, userID string, at int64, collateralValue, borrowValue decimal.Decimal) error
	FindLiquidity(ctx context.Context, userID string, at int64) (decimal.Decimal, decimal.Decimal, error)
}

// IAccountService account service interface
type IAccountService interface {
	// AccountLiquidity values collateral and debt across all listed markets,
	// both in the oracle's USD scale
	AccountLiquidity(ctx context.Context, userID string) (collateralValue, borrowValue decimal.Decimal, err error)
	HealthFactor(ctx context.Context, userID string) (decimal.Decimal, error)
	// UnderwaterAccounts lists accounts eligible for liquidation
	UnderwaterAccounts(ctx context.Context) ([]*Account, error)
}
