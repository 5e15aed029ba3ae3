package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mselser95/bybit-sniper/internal/sizing"
	"github.com/mselser95/bybit-sniper/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var instrumentsCmd = &cobra.Command{
	Use:   "instruments <symbol>",
	Short: "Check whether a spot pair is listed and show its filters",
	Long: `Fetches the spot instrument catalog and reports whether the symbol
is present, along with the tick size and quantity step the order sizer would
use. Accepts either "ALTUSDT" or "ALT/USDT".`,
	Args: cobra.ExactArgs(1),
	RunE: runInstruments,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(instrumentsCmd)
}

func runInstruments(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalog, err := client.GetInstrumentsInfo(ctx)
	if err != nil {
		return fmt.Errorf("fetch instrument catalog: %w", err)
	}

	inst, err := sizing.FindInstrument(catalog, symbol)
	if err != nil {
		fmt.Printf("❌ %s is not listed (catalog has %d spot pairs)\n", symbol, len(catalog))
		return nil
	}

	fmt.Printf("✅ %s is listed\n", symbol)
	fmt.Printf("  Status:    %s\n", inst.Status)
	fmt.Printf("  Base coin: %s\n", inst.BaseCoin)
	fmt.Printf("  Quote:     %s\n", inst.QuoteCoin)
	fmt.Printf("  Tick size: %s\n", inst.PriceFilter.TickSize)
	fmt.Printf("  Qty step:  %s\n", inst.LotSizeFilter.QtyIncrement())
	fmt.Printf("  Min qty:   %s\n", inst.LotSizeFilter.MinOrderQty)

	return nil
}
