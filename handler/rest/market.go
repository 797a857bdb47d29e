package rest

import (
	"context"
	"net/http"
	"strings"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"
	"lever/handler/views"
)

func allMarketsHandler(marketStr core.IMarketStore, supplyStr core.ISupplyStore, borrowStr core.IBorrowStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		markets, e := marketStr.All(ctx)
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		marketViews := make([]*views.Market, 0)
		for _, m := range markets {
			marketViews = append(marketViews, getMarketView(ctx, m, supplyStr, borrowStr))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(marketStr core.IMarketStore, supplyStr core.ISupplyStore, borrowStr core.IBorrowStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Symbol string `json:"symbol"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		market, e := marketStr.FindBySymbol(ctx, strings.ToUpper(params.Symbol))
		if e != nil {
			render.BadRequest(w, e)
			return
		}

		if market.ID == 0 {
			render.BadRequest(w, core.ErrMarketNotFound)
			return
		}

		render.JSON(w, getMarketView(ctx, market, supplyStr, borrowStr))
	}
}

func getMarketView(ctx context.Context, market *core.Market, supplyStr core.ISupplyStore, borrowStr core.IBorrowStore) *views.Market {
	suppliers, e := supplyStr.CountOfSuppliers(ctx, market.AssetID)
	if e != nil {
		suppliers = 0
	}

	borrowers, e := borrowStr.CountOfBorrowers(ctx, market.AssetID)
	if e != nil {
		borrowers = 0
	}

	return views.NewMarket(market, suppliers, borrowers)
}
