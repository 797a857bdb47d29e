package proposal

import (
	"context"

	"lever/core"

	"github.com/fox-one/msgpack"
	"github.com/shopspring/decimal"
)

// proposal actions dispatched to the market admin api
const (
	ActionListMarket       = "list_market"
	ActionUpdateMarket     = "update_market"
	ActionCloseMarket      = "close_market"
	ActionOpenMarket       = "open_market"
	ActionWithdrawReserves = "withdraw_reserves"
)

// WithdrawReq is the encoded call of a withdraw_reserves proposal
type WithdrawReq struct {
	Opponent string          `json:"opponent" msgpack:"opponent"`
	Amount   decimal.Decimal `json:"amount" msgpack:"amount"`
}

// MarketExecutor dispatches executed proposals to the market service.
// Calls run under the genesis admin; admin rights were already checked
// when the proposal was scheduled.
func MarketExecutor(system *core.System, marketz core.IMarketService, pool core.IPoolService) Executor {
	var operator string
	if len(system.Admins) > 0 {
		operator = system.Admins[0]
	}

	return func(ctx context.Context, target, action string, call []byte) error {
		switch action {
		case ActionListMarket:
			var market core.Market
			if err := msgpack.Unmarshal(call, &market); err != nil {
				return err
			}
			market.AssetID = target
			return marketz.ListMarket(ctx, operator, &market)
		case ActionUpdateMarket:
			var market core.Market
			if err := msgpack.Unmarshal(call, &market); err != nil {
				return err
			}
			market.AssetID = target
			return marketz.UpdateMarket(ctx, operator, &market)
		case ActionCloseMarket:
			return marketz.CloseMarket(ctx, operator, target)
		case ActionOpenMarket:
			return marketz.OpenMarket(ctx, operator, target)
		case ActionWithdrawReserves:
			var req WithdrawReq
			if err := msgpack.Unmarshal(call, &req); err != nil {
				return err
			}
			return pool.WithdrawReserves(ctx, operator, target, req.Opponent, req.Amount)
		default:
			return core.ErrInvalidParams
		}
	}
}
