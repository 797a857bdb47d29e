package handler

import (
	"net/http"

	"lever/core"
	"lever/handler/hc"
	"lever/handler/rest"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
)

// Server bundles the http surface of the ledger
type Server struct {
	Version string

	MarketStore    core.IMarketStore
	SupplyStore    core.ISupplyStore
	BorrowStore    core.IBorrowStore
	OperationStore core.IOperationStore
	AccountStore   core.IAccountStore
	AccountService core.IAccountService
	PriceOracle    core.IPriceOracleService
	PoolService    core.IPoolService
}

// Handler assembles the full route tree
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	mux.Mount("/hc", hc.Handle(s.Version))
	mux.Mount("/api", rest.Handle(
		s.MarketStore,
		s.SupplyStore,
		s.BorrowStore,
		s.OperationStore,
		s.AccountStore,
		s.AccountService,
		s.PriceOracle,
		s.PoolService,
	))

	return mux
}
