package cmd

import (
	"strings"

	"lever/core"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var addMarketCmd = &cobra.Command{
	Use:     "add-market",
	Aliases: []string{"am"},
	Short:   "list a new market",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		marketService := provideMarketService(database, system, provideMarketStore(database), provideOperationStore(database), provideRateOracle())

		market, operator := marketFromFlags(cmd)
		if market.Symbol == "" || market.AssetID == "" {
			cmd.PrintErrln("symbol and asset id are required")
			return
		}

		if err := marketService.ListMarket(ctx, operator, market); err != nil {
			cmd.PrintErrln("list market error:", err)
			return
		}

		cmd.Println("market listed:", market.Symbol)
	},
}

var updateMarketCmd = &cobra.Command{
	Use:     "update-market",
	Aliases: []string{"um"},
	Short:   "update market parameters",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		marketService := provideMarketService(database, system, provideMarketStore(database), provideOperationStore(database), provideRateOracle())

		market, operator := marketFromFlags(cmd)
		if err := marketService.UpdateMarket(ctx, operator, market); err != nil {
			cmd.PrintErrln("update market error:", err)
			return
		}

		cmd.Println("market updated:", market.AssetID)
	},
}

var closeMarketCmd = &cobra.Command{
	Use:   "close-market",
	Short: "close a market",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		marketService := provideMarketService(database, system, provideMarketStore(database), provideOperationStore(database), provideRateOracle())

		assetID, _ := cmd.Flags().GetString("asset")
		operator, _ := cmd.Flags().GetString("operator")
		if err := marketService.CloseMarket(ctx, operator, assetID); err != nil {
			cmd.PrintErrln("close market error:", err)
			return
		}

		cmd.Println("market closed:", assetID)
	},
}

var openMarketCmd = &cobra.Command{
	Use:   "open-market",
	Short: "reopen a closed market",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()
		marketService := provideMarketService(database, system, provideMarketStore(database), provideOperationStore(database), provideRateOracle())

		assetID, _ := cmd.Flags().GetString("asset")
		operator, _ := cmd.Flags().GetString("operator")
		if err := marketService.OpenMarket(ctx, operator, assetID); err != nil {
			cmd.PrintErrln("open market error:", err)
			return
		}

		cmd.Println("market opened:", assetID)
	},
}

func marketFromFlags(cmd *cobra.Command) (*core.Market, string) {
	market := core.Market{}

	symbol, _ := cmd.Flags().GetString("symbol")
	market.Symbol = strings.ToUpper(symbol)
	market.AssetID, _ = cmd.Flags().GetString("asset")

	kind, _ := cmd.Flags().GetString("curve")
	market.CurveKind = core.CurveKind(kind)

	market.CollateralFactor = decimalFlag(cmd, "cf")
	market.LiquidationBonus = decimalFlag(cmd, "lb")
	market.ReserveFactor = decimalFlag(cmd, "rf")
	market.BaseRate = decimalFlag(cmd, "br")
	market.Multiplier = decimalFlag(cmd, "m")
	market.JumpMultiplier = decimalFlag(cmd, "jm")
	market.Kink = decimalFlag(cmd, "k")
	market.ExpCoeff = decimalFlag(cmd, "ec")
	market.ExpScale = decimalFlag(cmd, "es")
	market.MinRate = decimalFlag(cmd, "min-rate")
	market.MaxRate = decimalFlag(cmd, "max-rate")
	market.MaxStepRate = decimalFlag(cmd, "max-step")
	market.LowerBand = decimalFlag(cmd, "lower-band")
	market.UpperBand = decimalFlag(cmd, "upper-band")
	market.NeutralRate = decimalFlag(cmd, "neutral-rate")

	operator, _ := cmd.Flags().GetString("operator")
	return &market, operator
}

func decimalFlag(cmd *cobra.Command, name string) decimal.Decimal {
	flag, _ := cmd.Flags().GetString(name)
	d, _ := decimal.NewFromString(flag)
	return d
}

func marketFlags(cmd *cobra.Command) {
	cmd.Flags().String("symbol", "", "market symbol")
	cmd.Flags().String("asset", "", "asset id")
	cmd.Flags().String("operator", "", "admin user id")
	cmd.Flags().String("curve", "kink", "rate curve kind")
	cmd.Flags().String("cf", "0", "collateral factor")
	cmd.Flags().String("lb", "0", "liquidation bonus")
	cmd.Flags().String("rf", "0", "reserve factor")
	cmd.Flags().String("br", "0", "base rate")
	cmd.Flags().String("m", "0", "multiplier")
	cmd.Flags().String("jm", "0", "jump multiplier")
	cmd.Flags().String("k", "0", "kink point")
	cmd.Flags().String("ec", "0", "exponential coefficient")
	cmd.Flags().String("es", "0", "exponential scale")
	cmd.Flags().String("min-rate", "0", "adaptive min annual rate")
	cmd.Flags().String("max-rate", "0", "adaptive max annual rate")
	cmd.Flags().String("max-step", "0", "adaptive max annual step")
	cmd.Flags().String("lower-band", "0", "adaptive lower utilization band")
	cmd.Flags().String("upper-band", "0", "adaptive upper utilization band")
	cmd.Flags().String("neutral-rate", "0", "adaptive neutral annual rate")
}

func init() {
	rootCmd.AddCommand(addMarketCmd)
	rootCmd.AddCommand(updateMarketCmd)
	rootCmd.AddCommand(closeMarketCmd)
	rootCmd.AddCommand(openMarketCmd)

	marketFlags(addMarketCmd)
	marketFlags(updateMarketCmd)

	closeMarketCmd.Flags().String("asset", "", "asset id")
	closeMarketCmd.Flags().String("operator", "", "admin user id")
	openMarketCmd.Flags().String("asset", "", "asset id")
	openMarketCmd.Flags().String("operator", "", "admin user id")
}
