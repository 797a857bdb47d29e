package accrual

import (
	"context"
	"time"

	"lever/core"
	"lever/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker keeps every market's borrow index fresh between user actions.
type Worker struct {
	worker.BaseJob

	system        *core.System
	marketStore   core.IMarketStore
	marketService core.IMarketService
}

// New new accrual worker
func New(system *core.System, marketStore core.IMarketStore, marketService core.IMarketService) *Worker {
	job := Worker{
		system:        system,
		marketStore:   marketStore,
		marketService: marketService,
	}

	l, _ := time.LoadLocation(system.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	_, _ = job.Cron.AddFunc("@every 10s", job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")

	markets, err := w.marketStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.All")
		return err
	}

	now := time.Now()
	for _, market := range markets {
		if market.IsClosed() {
			continue
		}

		if err := w.marketService.Accrue(ctx, market.AssetID, now); err != nil {
			log.WithError(err).WithField("symbol", market.Symbol).Errorln("Accrue")
		}
	}

	return nil
}
