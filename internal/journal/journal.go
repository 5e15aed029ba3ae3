package journal

import (
	"context"

	"github.com/mselser95/bybit-sniper/pkg/types"
)

// Journal is the interface for recording the run's terminal order state.
type Journal interface {
	// RecordOrder records the final snapshot of the order.
	RecordOrder(ctx context.Context, record *types.OrderRecord) error

	// Close closes the journal.
	Close() error
}
