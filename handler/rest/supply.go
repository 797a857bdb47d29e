package rest

import (
	"context"
	"net/http"
	"strings"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"
	"lever/handler/views"
	"lever/pkg/lever"
)

func suppliesHandler(marketStr core.IMarketStore, supplyStr core.ISupplyStore, priceOracle core.IPriceOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID string `json:"user"`
			Symbol string `json:"symbol"`
		}
		if e := param.Binding(r, &params); e != nil {
			render.BadRequest(w, e)
			return
		}

		var (
			supplies []*core.Supply
			e        error
		)
		switch {
		case params.Symbol != "":
			market, err := marketStr.FindBySymbol(ctx, strings.ToUpper(params.Symbol))
			if err != nil {
				render.BadRequest(w, err)
				return
			}
			if market.ID == 0 {
				render.BadRequest(w, core.ErrMarketNotFound)
				return
			}

			if params.UserID != "" {
				var supply *core.Supply
				if supply, e = supplyStr.Find(ctx, params.UserID, market.AssetID); e == nil {
					supplies = []*core.Supply{supply}
				}
			} else {
				supplies, e = supplyStr.FindByAsset(ctx, market.AssetID)
			}
		case params.UserID != "":
			supplies, e = supplyStr.FindByUser(ctx, params.UserID)
		default:
			supplies, e = supplyStr.All(ctx)
		}

		if e != nil {
			render.BadRequest(w, e)
			return
		}

		supplyViews := make([]*views.Supply, 0)
		for _, s := range supplies {
			v, err := supplyView(ctx, marketStr, priceOracle, s)
			if err != nil {
				continue
			}

			supplyViews = append(supplyViews, v)
		}

		render.JSON(w, supplyViews)
	}
}

func supplyView(ctx context.Context, marketStr core.IMarketStore, priceOracle core.IPriceOracleService, supply *core.Supply) (*views.Supply, error) {
	market, err := marketStr.Find(ctx, supply.AssetID)
	if err != nil {
		return nil, err
	}

	if market.ID == 0 {
		return nil, core.ErrMarketNotFound
	}

	price, err := priceOracle.GetPrice(ctx, supply.AssetID)
	if err != nil {
		return nil, err
	}

	return &views.Supply{
		Supply: *supply,
		Amount: lever.AmountForShares(market, supply.Shares),
		Price:  price,
	}, nil
}
