package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"
	"lever/handler/views"
	accountservice "lever/service/account"

	"github.com/shopspring/decimal"
)

// responses account liquidity by user id; pass the minute timestamp of a
// liquidator scan to read its cached snapshot instead of pricing live
func liquidityHandler(accountSrv core.IAccountService, accountStr core.IAccountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID string `json:"user"`
			At     int64  `json:"at"`
		}
		if e := param.Binding(r, &params); e != nil {
			render.BadRequest(w, e)
			return
		}

		var (
			collateralValue decimal.Decimal
			borrowValue     decimal.Decimal
			e               error
		)
		if params.At > 0 {
			collateralValue, borrowValue, e = accountStr.FindLiquidity(ctx, params.UserID, params.At)
		} else {
			collateralValue, borrowValue, e = accountSrv.AccountLiquidity(ctx, params.UserID)
		}
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		healthFactor := accountservice.MaxHealthFactor
		if borrowValue.IsPositive() {
			healthFactor = collateralValue.Div(borrowValue).Truncate(core.PriceDecimals)
		}

		render.JSON(w, views.Account{
			UserID:          params.UserID,
			CollateralValue: collateralValue,
			BorrowValue:     borrowValue,
			HealthFactor:    healthFactor,
		})
	}
}
