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

func borrowsHandler(marketStr core.IMarketStore, borrowStr core.IBorrowStore, priceOracle core.IPriceOracleService) http.HandlerFunc {
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
			borrows []*core.Borrow
			e       error
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
				var borrow *core.Borrow
				if borrow, e = borrowStr.Find(ctx, params.UserID, market.AssetID); e == nil {
					borrows = []*core.Borrow{borrow}
				}
			} else {
				borrows, e = borrowStr.FindByAsset(ctx, market.AssetID)
			}
		case params.UserID != "":
			borrows, e = borrowStr.FindByUser(ctx, params.UserID)
		default:
			borrows, e = borrowStr.All(ctx)
		}

		if e != nil {
			render.BadRequest(w, e)
			return
		}

		borrowViews := make([]*views.Borrow, 0)
		for _, b := range borrows {
			v, err := borrowView(ctx, marketStr, priceOracle, b)
			if err != nil {
				continue
			}

			borrowViews = append(borrowViews, v)
		}

		render.JSON(w, borrowViews)
	}
}

func borrowView(ctx context.Context, marketStr core.IMarketStore, priceOracle core.IPriceOracleService, borrow *core.Borrow) (*views.Borrow, error) {
	market, err := marketStr.Find(ctx, borrow.AssetID)
	if err != nil {
		return nil, err
	}

	if market.ID == 0 {
		return nil, core.ErrMarketNotFound
	}

	price, err := priceOracle.GetPrice(ctx, borrow.AssetID)
	if err != nil {
		return nil, err
	}

	return &views.Borrow{
		Borrow:  *borrow,
		Balance: lever.BorrowBalance(borrow, market),
		Price:   price,
	}, nil
}
