package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lever/handler"

	"github.com/drone/signal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run lever api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		marketStore := provideMarketStore(database)
		supplyStore := provideSupplyStore(database)
		borrowStore := provideBorrowStore(database)
		operationStore := provideOperationStore(database)
		accountStore := provideAccountStore(provideRedis())

		priceOracle := providePriceOracle()
		rateOracle := provideRateOracle()
		accountService := provideAccountService(marketStore, supplyStore, borrowStore, priceOracle)

		system := provideSystem()
		poolService := providePoolService(
			database,
			system,
			marketStore,
			supplyStore,
			borrowStore,
			operationStore,
			priceOracle,
			rateOracle,
			accountService,
			provideTokenLedger(),
		)

		svr := handler.Server{
			Version:        rootCmd.Version,
			MarketStore:    marketStore,
			SupplyStore:    supplyStore,
			BorrowStore:    borrowStore,
			OperationStore: operationStore,
			AccountStore:   accountStore,
			AccountService: accountService,
			PriceOracle:    priceOracle,
			PoolService:    poolService,
		}

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.App.Port
		}
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: svr.Handler(),
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 0, "server port")
}
