package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"

	"github.com/shopspring/decimal"
)

func depositHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID  string          `json:"user"`
			AssetID string          `json:"asset"`
			Amount  decimal.Decimal `json:"amount"`
		}
		if e := param.Binding(r, &params); e != nil {
			render.BadRequest(w, e)
			return
		}

		shares, err := pool.Deposit(ctx, params.UserID, params.AssetID, params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"shares": shares})
	}
}

func withdrawHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID  string          `json:"user"`
			AssetID string          `json:"asset"`
			Shares  decimal.Decimal `json:"shares"`
		}
		if e := param.Binding(r, &params); e != nil {
			render.BadRequest(w, e)
			return
		}

		amount, err := pool.Withdraw(ctx, params.UserID, params.AssetID, params.Shares)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"amount": amount})
	}
}

func borrowHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID  string          `json:"user"`
			AssetID string          `json:"asset"`
			Amount  decimal.Decimal `json:"amount"`
		}
		if e := param.Binding(r, &params); e != nil {
			render.BadRequest(w, e)
			return
		}

		if err := pool.Borrow(ctx, params.UserID, params.AssetID, params.Amount); err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"amount": params.Amount})
	}
}

func repayHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID  string          `json:"user"`
			AssetID string          `json:"asset"`
			Amount  decimal.Decimal `json:"amount"`
		}
		if e := param.Binding(r, &params); e != nil {
			render.BadRequest(w, e)
			return
		}

		repaid, err := pool.Repay(ctx, params.UserID, params.AssetID, params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"amount": repaid})
	}
}

func liquidationHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			LiquidatorID    string          `json:"liquidator"`
			BorrowerID      string          `json:"borrower"`
			RepayAssetID    string          `json:"repay_asset"`
			CollateralAsset string          `json:"collateral_asset"`
			Amount          decimal.Decimal `json:"amount"`
		}
		if e := param.Binding(r, &params); e != nil {
			render.BadRequest(w, e)
			return
		}

		seized, err := pool.Liquidate(ctx, params.LiquidatorID, params.BorrowerID, params.RepayAssetID, params.CollateralAsset, params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"seized_shares": seized})
	}
}
