package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mselser95/bybit-sniper/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var tickerCmd = &cobra.Command{
	Use:   "ticker <symbol>",
	Short: "Show the last traded price for a spot pair",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicker,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(tickerCmd)
}

func runTicker(cmd *cobra.Command, args []string) error {
	err := loadDotEnv()
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	symbol := config.NormalizeSymbol(args[0])
	client := newPublicClient(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	price, err := client.GetTickerPrice(ctx, symbol)
	if err != nil {
		return fmt.Errorf("fetch ticker: %w", err)
	}

	fmt.Printf("%s last price: %s\n", symbol, price)

	return nil
}
