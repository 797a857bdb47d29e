package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// MarketStatus market status
type MarketStatus int

const (
	// MarketStatusOpen open
	MarketStatusOpen MarketStatus = iota + 1
	// MarketStatusClosed deactivated by the admin, never deleted
	MarketStatusClosed
)

// CurveKind interest rate curve variant
type CurveKind string

const (
	// CurveLinear linear rate curve
	CurveLinear CurveKind = "linear"
	// CurveKink kinked rate curve
	CurveKink CurveKind = "kink"
	// CurveExponential exponential rate curve
	CurveExponential CurveKind = "exponential"
	// CurveAdaptive time-weighted adaptive rate curve
	CurveAdaptive CurveKind = "adaptive"
	// CurveOracle oracle-driven dynamic rate curve
	CurveOracle CurveKind = "oracle"
)

// Market is the pool account of one listed asset.
//
// TotalCash/TotalBorrows/Reserves together define the pool's underlying;
// BorrowIndex only grows and converts borrow principals into live debt.
type Market struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	Symbol  string `sql:"size:20;unique_index:symbol_idx" json:"symbol"`

	TotalCash    decimal.Decimal `sql:"type:decimal(32,16)" json:"total_cash"`
	TotalBorrows decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrows"`
	Reserves     decimal.Decimal `sql:"type:decimal(32,16)" json:"reserves"`
	TotalShares  decimal.Decimal `sql:"type:decimal(32,16)" json:"total_shares"`

	// 抵押因子 = 可借贷价值 / 抵押资产价值
	CollateralFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"collateral_factor"`
	// 清算激励因子
	LiquidationBonus decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_bonus"`
	ReserveFactor    decimal.Decimal `sql:"type:decimal(20,8)" json:"reserve_factor"`

	CurveKind CurveKind `sql:"size:20" json:"curve_kind"`
	// annual rates, converted to per-second by the curve
	BaseRate       decimal.Decimal `sql:"type:decimal(20,8)" json:"base_rate"`
	Multiplier     decimal.Decimal `sql:"type:decimal(20,8)" json:"multiplier"`
	JumpMultiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"jump_multiplier"`
	Kink           decimal.Decimal `sql:"type:decimal(20,8)" json:"kink"`
	// exponential curve: base + coeff*(e^(exp_scale*u) - 1), exp_scale <= 2
	ExpCoeff decimal.Decimal `sql:"type:decimal(20,8)" json:"exp_coeff"`
	ExpScale decimal.Decimal `sql:"type:decimal(20,8)" json:"exp_scale"`
	// adaptive curve band controller
	MinRate      decimal.Decimal `sql:"type:decimal(20,8)" json:"min_rate"`
	MaxRate      decimal.Decimal `sql:"type:decimal(20,8)" json:"max_rate"`
	MaxStepRate  decimal.Decimal `sql:"type:decimal(20,8)" json:"max_step_rate"`
	LowerBand    decimal.Decimal `sql:"type:decimal(20,8)" json:"lower_band"`
	UpperBand    decimal.Decimal `sql:"type:decimal(20,8)" json:"upper_band"`
	NeutralRate  decimal.Decimal `sql:"type:decimal(20,8)" json:"neutral_rate"`
	AdaptiveRate decimal.Decimal `sql:"type:decimal(20,16)" json:"adaptive_rate"`
	AdaptiveAt   time.Time       `json:"adaptive_at"`

	BorrowIndex decimal.Decimal `sql:"type:decimal(28,16)" json:"borrow_index"`
	AccruedAt   time.Time       `json:"accrued_at"`

	// cached for views, refreshed on every accrual
	UtilizationRate     decimal.Decimal `sql:"type:decimal(20,16)" json:"utilization_rate"`
	ExchangeRate        decimal.Decimal `sql:"type:decimal(20,16)" json:"exchange_rate"`
	BorrowRatePerSecond decimal.Decimal `sql:"type:decimal(20,16)" json:"borrow_rate_per_second"`
	SupplyRatePerSecond decimal.Decimal `sql:"type:decimal(20,16)" json:"supply_rate_per_second"`
	Price               decimal.Decimal `sql:"type:decimal(20,8)" json:"price"`

	Status    MarketStatus `sql:"default:1" json:"status"`
	Version   int64        `sql:"default:0" json:"version"`
	CreatedAt time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IsClosed deactivated markets reject every user action
func (m *Market) IsClosed() bool {
	return m.Status == MarketStatusClosed
}

// IMarketStore market store interface
type IMarketStore interface {
	Create(ctx context.Context, tx *db.DB, market *Market) error
	Find(ctx context.Context, assetID string) (*Market, error)
	FindBySymbol(ctx context.Context, symbol string) (*Market, error)
	All(ctx context.Context) ([]*Market, error)
	AllAsMap(ctx context.Context) (map[string]*Market, error)
	Update(ctx context.Context, tx *db.DB, market *Market) error
}

// IMarketService market service interface
type IMarketService interface {
	// Accrue advances interest on the market and persists it
	Accrue(ctx context.Context, assetID string, at time.Time) error
	ListMarket(ctx context.Context, operator string, market *Market) error
	UpdateMarket(ctx context.Context, operator string, market *Market) error
	CloseMarket(ctx context.Context, operator string, assetID string) error
	OpenMarket(ctx context.Context, operator string, assetID string) error
}
