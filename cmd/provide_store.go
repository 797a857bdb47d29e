package cmd

import (
	"lever/core"
	"lever/store/account"
	"lever/store/borrow"
	"lever/store/market"
	"lever/store/operation"
	"lever/store/proposal"
	"lever/store/supply"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/go-redis/redis"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideMarketStore(db *db.DB) core.IMarketStore {
	return market.New(db)
}

func provideSupplyStore(db *db.DB) core.ISupplyStore {
	return supply.New(db)
}

func provideBorrowStore(db *db.DB) core.IBorrowStore {
	return borrow.New(db)
}

func provideOperationStore(db *db.DB) core.IOperationStore {
	return operation.New(db)
}

func provideProposalStore(db *db.DB) core.IProposalStore {
	return proposal.New(db)
}

func provideAccountStore(redis *redis.Client) core.IAccountStore {
	return account.New(redis)
}
