package cmd

import (
	"time"

	"lever/core"
	proposalservice "lever/service/proposal"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func buildProposalService(database *db.DB, system *core.System) core.IProposalService {
	marketStore := provideMarketStore(database)
	supplyStore := provideSupplyStore(database)
	borrowStore := provideBorrowStore(database)
	operationStore := provideOperationStore(database)

	priceOracle := providePriceOracle()
	rateOracle := provideRateOracle()
	accountService := provideAccountService(marketStore, supplyStore, borrowStore, priceOracle)

	marketService := provideMarketService(database, system, marketStore, operationStore, rateOracle)
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

	return provideProposalService(database, system, provideProposalStore(database), marketService, poolService)
}

var proposalCmd = &cobra.Command{
	Use:   "proposal",
	Short: "manage timelocked admin proposals",
}

var proposalScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "schedule a market admin call behind the timelock",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		proposalService := buildProposalService(database, system)

		action, _ := cmd.Flags().GetString("action")
		delay, _ := cmd.Flags().GetDuration("delay")

		market, operator := marketFromFlags(cmd)

		var payload interface{}
		switch action {
		case proposalservice.ActionListMarket, proposalservice.ActionUpdateMarket:
			payload = market
		case proposalservice.ActionCloseMarket, proposalservice.ActionOpenMarket:
			payload = struct{}{}
		case proposalservice.ActionWithdrawReserves:
			opponent, _ := cmd.Flags().GetString("opponent")
			raw, _ := cmd.Flags().GetString("amount")
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				cmd.PrintErrln("invalid amount:", raw)
				return
			}
			payload = proposalservice.WithdrawReq{Opponent: opponent, Amount: amount}
		default:
			cmd.PrintErrln("unknown action:", action)
			return
		}

		proposal, err := proposalService.Schedule(ctx, operator, market.AssetID, action, payload, time.Now().Add(delay))
		if err != nil {
			cmd.PrintErrln("schedule proposal error:", err)
			return
		}

		cmd.Println("proposal scheduled:", proposal.TraceID)
	},
}

var proposalExecuteCmd = &cobra.Command{
	Use:   "execute",
	Short: "execute a pending proposal after its delay",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		proposalService := buildProposalService(database, system)

		trace, _ := cmd.Flags().GetString("trace")
		operator, _ := cmd.Flags().GetString("operator")

		if err := proposalService.Execute(ctx, operator, trace, time.Now()); err != nil {
			cmd.PrintErrln("execute proposal error:", err)
			return
		}

		cmd.Println("proposal executed:", trace)
	},
}

var proposalCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "cancel a pending proposal",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		proposalService := buildProposalService(database, system)

		trace, _ := cmd.Flags().GetString("trace")
		operator, _ := cmd.Flags().GetString("operator")

		if err := proposalService.Cancel(ctx, operator, trace); err != nil {
			cmd.PrintErrln("cancel proposal error:", err)
			return
		}

		cmd.Println("proposal cancelled:", trace)
	},
}

func init() {
	rootCmd.AddCommand(proposalCmd)
	proposalCmd.AddCommand(proposalScheduleCmd)
	proposalCmd.AddCommand(proposalExecuteCmd)
	proposalCmd.AddCommand(proposalCancelCmd)

	marketFlags(proposalScheduleCmd)
	proposalScheduleCmd.Flags().String("action", "", "proposal action")
	proposalScheduleCmd.Flags().Duration("delay", 24*time.Hour, "timelock delay")
	proposalScheduleCmd.Flags().String("opponent", "", "reserves receiver user id")
	proposalScheduleCmd.Flags().String("amount", "", "reserves amount")

	proposalExecuteCmd.Flags().String("trace", "", "proposal trace id")
	proposalExecuteCmd.Flags().String("operator", "", "admin user id")
	proposalCancelCmd.Flags().String("trace", "", "proposal trace id")
	proposalCancelCmd.Flags().String("operator", "", "admin user id")
}
