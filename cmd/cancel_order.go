package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"github.com/mselser95/bybit-sniper/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var cancelOrderCmd = &cobra.Command{
	Use:   "cancel-order <orderId>",
	Short: "Cancel a resting spot order",
	Long: `Cancels a resting order by exchange order ID. An "order does not
exist" reply means the order already filled or was already cancelled, and is
reported as such rather than as a failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runCancelOrder,
}

//nolint:gochecknoglobals // Cobra boilerplate
var cancelSymbolFlag string

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(cancelOrderCmd)
	cancelOrderCmd.Flags().StringVarP(&cancelSymbolFlag, "symbol", "s", "", "Spot symbol the order belongs to (required)")
	_ = cancelOrderCmd.MarkFlagRequired("symbol")
}

func runCancelOrder(cmd *cobra.Command, args []string) error {
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

	client, err := newSignedClient(logger)
	if err != nil {
		return err
	}

	symbol := config.NormalizeSymbol(cancelSymbolFlag)
	orderID := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err = client.CancelOrder(ctx, symbol, orderID)
	switch {
	case err == nil:
		fmt.Printf("✅ Cancelled order %s\n", orderID)
	case bybit.IsOrderNotFound(err):
		fmt.Printf("Order %s no longer exists (already filled or cancelled)\n", orderID)
	default:
		var apiErr *bybit.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("exchange rejected cancel: %w", apiErr)
		}
		return fmt.Errorf("cancel order: %w", err)
	}

	return nil
}
