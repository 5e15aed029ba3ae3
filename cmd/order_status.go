package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mselser95/bybit-sniper/internal/journal"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var orderStatusCmd = &cobra.Command{
	Use:   "order-status <orderId>",
	Short: "Show the order history record for an order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderStatus,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(orderStatusCmd)
}

func runOrderStatus(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	record, err := client.GetOrderHistory(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetch order history: %w", err)
	}

	if record == nil {
		fmt.Printf("No order history record for %s\n", args[0])
		return nil
	}

	return journal.NewConsoleJournal(logger).RecordOrder(ctx, record)
}
