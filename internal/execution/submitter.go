package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mselser95/bybit-sniper/internal/sizing"
	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"github.com/mselser95/bybit-sniper/pkg/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// maxAttempts bounds order placement retries. Repeated identical
	// placement failures usually mean a persistent problem (bad balance,
	// bad precision) that waiting will not fix.
	maxAttempts = 3

	retryDelay = 500 * time.Millisecond
)

// OrderAPI is the exchange surface the submitter and supervisor consume.
type OrderAPI interface {
	PlaceLimitSell(ctx context.Context, symbol string, qty, price decimal.Decimal) (string, error)
	GetOrderHistory(ctx context.Context, orderID string) (*types.OrderRecord, error)
	CancelOrder(ctx context.Context, symbol, orderID string) error
}

// Submitter places the limit sell with bounded retry on transient failure.
type Submitter struct {
	client OrderAPI
	logger *zap.Logger
}

// NewSubmitter creates a new order Submitter.
func NewSubmitter(client OrderAPI, logger *zap.Logger) *Submitter {
	return &Submitter{client: client, logger: logger}
}

// Submit attempts to place the order up to maxAttempts times and returns the
// exchange-assigned order ID. An API rejection and a transport error both
// count as a failed attempt. Exhausting the budget means no order exists and
// the run ends in failure.
func (s *Submitter) Submit(ctx context.Context, req *sizing.OrderRequest) (string, error) {
	s.logger.Info("placing-limit-sell",
		zap.String("symbol", req.Symbol),
		zap.String("qty", req.Qty.String()),
		zap.String("price", req.Price.String()),
		zap.String("market-price", req.Market.String()))

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		s.logger.Info("order-attempt",
			zap.Int("attempt", attempt),
			zap.Int("max-attempts", maxAttempts))

		orderID, err := s.client.PlaceLimitSell(ctx, req.Symbol, req.Qty, req.Price)
		if err == nil {
			OrderAttemptsTotal.WithLabelValues("success").Inc()
			return orderID, nil
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		OrderAttemptsTotal.WithLabelValues("failure").Inc()

		var apiErr *bybit.APIError
		if errors.As(err, &apiErr) {
			s.logger.Error("order-rejected",
				zap.Int("ret-code", apiErr.RetCode),
				zap.String("ret-msg", apiErr.RetMsg),
				zap.Int("attempt", attempt))
		} else {
			s.logger.Error("order-request-failed",
				zap.Error(err),
				zap.Int("attempt", attempt))
		}

		if attempt < maxAttempts {
			err = sleepCtx(ctx, retryDelay)
			if err != nil {
				return "", err
			}
		}
	}

	return "", fmt.Errorf("all %d order placement attempts failed", maxAttempts)
}

// sleepCtx sleeps for d or returns early with the context's error.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
