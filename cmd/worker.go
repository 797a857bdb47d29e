package cmd

import (
	"lever/worker"
	"lever/worker/accrual"
	"lever/worker/liquidator"
	"lever/worker/pricefeed"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lever job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		redisClient := provideRedis()
		system := provideSystem()

		propertyStore := providePropertyStore(database)
		marketStore := provideMarketStore(database)
		supplyStore := provideSupplyStore(database)
		borrowStore := provideBorrowStore(database)
		operationStore := provideOperationStore(database)
		accountStore := provideAccountStore(redisClient)

		priceOracle := providePriceOracle()
		rateOracle := provideRateOracle()
		marketService := provideMarketService(database, system, marketStore, operationStore, rateOracle)
		accountService := provideAccountService(marketStore, supplyStore, borrowStore, priceOracle)

		workers := []worker.IJob{
			accrual.New(system, marketStore, marketService),
			liquidator.New(system, propertyStore, accountStore, accountService),
			pricefeed.New(database, system, marketStore, priceOracle),
		}

		for _, w := range workers {
			if err := w.Start(); err != nil {
				log.WithError(err).Fatalln("worker start failed")
			}
		}

		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			for _, w := range workers {
				_ = w.Stop()
			}

			close(done)
		})

		log.Infoln("workers started")
		<-done
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
