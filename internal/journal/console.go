package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/mselser95/bybit-sniper/pkg/types"
	"go.uber.org/zap"
)

// ConsoleJournal records orders by pretty-printing them to the console.
type ConsoleJournal struct {
	logger *zap.Logger
}

// NewConsoleJournal creates a new console journal.
func NewConsoleJournal(logger *zap.Logger) *ConsoleJournal {
	return &ConsoleJournal{logger: logger}
}

// RecordOrder pretty-prints the final order snapshot.
func (c *ConsoleJournal) RecordOrder(ctx context.Context, record *types.OrderRecord) error {
	rule := strings.Repeat("━", 45)

	fmt.Println("\n" + rule)
	fmt.Println("📋 FINAL ORDER STATE")
	fmt.Println(rule)
	fmt.Printf("  Symbol:        %s\n", record.Symbol)
	fmt.Printf("  Order ID:      %s\n", record.OrderID)
	fmt.Printf("  Status:        %s\n", record.Status)
	fmt.Printf("  Type:          %s\n", record.OrderType)
	fmt.Printf("  Side:          %s\n", record.Side)
	fmt.Printf("  Quantity:      %s\n", record.Qty)
	fmt.Printf("  Price:         %s\n", record.Price)
	fmt.Printf("  Filled Qty:    %s\n", record.CumExecQty)
	fmt.Printf("  Filled Value:  %s\n", record.CumExecValue)
	fmt.Printf("  Time in Force: %s\n", record.TimeInForce)
	fmt.Println(rule)

	return nil
}

// Close is a no-op for the console journal.
func (c *ConsoleJournal) Close() error {
	c.logger.Debug("closing-console-journal")
	return nil
}
