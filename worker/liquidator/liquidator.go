package liquidator

import (
	"context"
	"time"

	"lever/core"
	"lever/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const checkpointKey = "liquidator_checkpoint"

// Worker scans borrow accounts and caches the liquidity of underwater
// ones for liquidation bots to pick up.
type Worker struct {
	worker.BaseJob

	system         *core.System
	propertyStore  property.Store
	accountStore   core.IAccountStore
	accountService core.IAccountService
}

// New new liquidator worker
func New(system *core.System, propertyStore property.Store, accountStore core.IAccountStore, accountService core.IAccountService) *Worker {
	job := Worker{
		system:         system,
		propertyStore:  propertyStore,
		accountStore:   accountStore,
		accountService: accountService,
	}

	l, _ := time.LoadLocation(system.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	_, _ = job.Cron.AddFunc("@every 1m", job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "liquidator")

	accounts, err := w.accountService.UnderwaterAccounts(ctx)
	if err != nil {
		log.WithError(err).Errorln("UnderwaterAccounts")
		return err
	}

	at := time.Now().Truncate(time.Minute).Unix()
	for _, account := range accounts {
		if err := w.accountStore.SaveLiquidity(ctx, account.UserID, at, account.CollateralValue, account.BorrowValue); err != nil {
			log.WithError(err).Errorln("accounts.SaveLiquidity")
			continue
		}

		log.WithFields(logrus.Fields{
			"user":             account.UserID,
			"collateral_value": account.CollateralValue,
			"borrow_value":     account.BorrowValue,
		}).Infoln("underwater account")
	}

	if err := w.propertyStore.Save(ctx, checkpointKey, at); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}
