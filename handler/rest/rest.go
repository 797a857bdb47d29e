package rest

import (
	"errors"
	"net/http"

	"lever/core"
	"lever/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	marketStore core.IMarketStore,
	supplyStore core.ISupplyStore,
	borrowStore core.IBorrowStore,
	operationStore core.IOperationStore,
	accountStore core.IAccountStore,
	accountService core.IAccountService,
	priceOracle core.IPriceOracleService,
	poolService core.IPoolService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/markets/all", allMarketsHandler(marketStore, supplyStore, borrowStore))
	router.Get("/markets", marketHandler(marketStore, supplyStore, borrowStore))
	router.Get("/supplies", suppliesHandler(marketStore, supplyStore, priceOracle))
	router.Get("/borrows", borrowsHandler(marketStore, borrowStore, priceOracle))
	router.Get("/accounts/liquidity", liquidityHandler(accountService, accountStore))
	router.Get("/operations", operationsHandler(operationStore))

	router.Post("/deposits", depositHandler(poolService))
	router.Post("/withdraws", withdrawHandler(poolService))
	router.Post("/borrows", borrowHandler(poolService))
	router.Post("/repays", repayHandler(poolService))
	router.Post("/liquidations", liquidationHandler(poolService))

	return router
}
