package cmd

import (
	"lever/core"
	accountservice "lever/service/account"
	"lever/service/ledger"
	marketservice "lever/service/market"
	"lever/service/oracle"
	poolservice "lever/service/pool"
	proposalservice "lever/service/proposal"

	"github.com/fox-one/pkg/store/db"
)

func provideSystem() *core.System {
	return &core.System{
		Admins:   cfg.Admins,
		Genesis:  cfg.App.Genesis,
		Location: cfg.App.Location,
		Version:  rootCmd.Version,
	}
}

func providePriceOracle() core.IPriceOracleService {
	return oracle.New(cfg.PriceFeed)
}

func provideRateOracle() core.IRateOracleService {
	return oracle.NewRateOracle(oracle.Config{URL: cfg.RateFeed.URL})
}

func provideTokenLedger() core.TokenLedger {
	return ledger.New(cfg.Ledger)
}

func provideMarketService(db *db.DB, system *core.System, marketStore core.IMarketStore, operationStore core.IOperationStore, rateOracle core.IRateOracleService) core.IMarketService {
	return marketservice.New(db, system, marketStore, operationStore, rateOracle)
}

func provideAccountService(marketStore core.IMarketStore, supplyStore core.ISupplyStore, borrowStore core.IBorrowStore, priceOracle core.IPriceOracleService) core.IAccountService {
	return accountservice.New(marketStore, supplyStore, borrowStore, priceOracle)
}

func providePoolService(
	db *db.DB,
	system *core.System,
	marketStore core.IMarketStore,
	supplyStore core.ISupplyStore,
	borrowStore core.IBorrowStore,
	operationStore core.IOperationStore,
	priceOracle core.IPriceOracleService,
	rateOracle core.IRateOracleService,
	accountService core.IAccountService,
	tokenLedger core.TokenLedger,
) core.IPoolService {
	return poolservice.New(
		db,
		system,
		marketStore,
		supplyStore,
		borrowStore,
		operationStore,
		priceOracle,
		rateOracle,
		accountService,
		tokenLedger,
	)
}

func provideProposalService(db *db.DB, system *core.System, proposalStore core.IProposalStore, marketService core.IMarketService, poolService core.IPoolService) core.IProposalService {
	executor := proposalservice.MarketExecutor(system, marketService, poolService)
	return proposalservice.New(db, system, proposalStore, executor)
}
