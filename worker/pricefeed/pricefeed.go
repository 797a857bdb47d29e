package pricefeed

import (
	"context"
	"time"

	"lever/core"
	"lever/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
)

// Worker polls the price oracle and refreshes the cached price on
// every open market.
type Worker struct {
	worker.BaseJob

	db          *db.DB
	system      *core.System
	marketStore core.IMarketStore
	priceOracle core.IPriceOracleService
}

// New new price feed worker
func New(database *db.DB, system *core.System, marketStore core.IMarketStore, priceOracle core.IPriceOracleService) *Worker {
	job := Worker{
		db:          database,
		system:      system,
		marketStore: marketStore,
		priceOracle: priceOracle,
	}

	l, _ := time.LoadLocation(system.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	_, _ = job.Cron.AddFunc("@every 30s", job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pricefeed")

	markets, err := w.marketStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.All")
		return err
	}

	for _, m := range markets {
		if m.IsClosed() {
			continue
		}

		price, err := w.priceOracle.GetPrice(ctx, m.AssetID)
		if err != nil {
			log.WithError(err).Errorf("GetPrice: %s", m.Symbol)
			continue
		}

		if price.Equal(m.Price) {
			continue
		}

		market := m
		if err := w.db.Tx(func(tx *db.DB) error {
			market.Price = price
			return w.marketStore.Update(ctx, tx, market)
		}); err != nil {
			log.WithError(err).Errorf("markets.Update: %s", m.Symbol)
			continue
		}
	}

	return nil
}
