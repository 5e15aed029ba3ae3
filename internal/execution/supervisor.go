package execution

import (
	"context"
	"time"

	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"github.com/mselser95/bybit-sniper/pkg/types"
	"go.uber.org/zap"
)

const (
	// pollQuantum is the delay between order status polls and after
	// transient status-poll errors.
	pollQuantum = 500 * time.Millisecond

	// cancelGrace bounds the best-effort cancel issued when the run is
	// interrupted while the order is still resting.
	cancelGrace = 5 * time.Second
)

// Outcome is the terminal state the supervisor resolved the order into.
type Outcome string

const (
	// OutcomeFilled means the order filled completely before the timeout.
	OutcomeFilled Outcome = "filled"
	// OutcomeEnded means the exchange ended the order (cancelled, rejected
	// or partially-filled-then-cancelled) without the bot's involvement.
	OutcomeEnded Outcome = "ended"
	// OutcomeTimedOut means the fill timeout elapsed and the bot cancelled
	// the resting order.
	OutcomeTimedOut Outcome = "timed_out"
	// OutcomeInterrupted means an external stop signal unwound the wait;
	// a best-effort cancel was issued first.
	OutcomeInterrupted Outcome = "interrupted"
)

// Result is the supervisor's terminal report. Record is the last order
// snapshot seen and may be nil when the exchange had no record yet.
type Result struct {
	Outcome Outcome
	Record  *types.OrderRecord
}

// Supervisor polls an order until it resolves or a timeout elapses, at which
// point it cancels the order. It owns the order handle for the remainder of
// the run.
type Supervisor struct {
	client  OrderAPI
	timeout time.Duration
	logger  *zap.Logger
}

// NewSupervisor creates a new fill Supervisor.
func NewSupervisor(client OrderAPI, timeout time.Duration, logger *zap.Logger) *Supervisor {
	return &Supervisor{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

// Await supervises the order until a terminal state. The timeout clock is a
// single monotonic start captured on entry, immediately after submission.
// Transient errors while polling status are logged and retried on the poll
// quantum; they neither count toward nor reset the timeout clock. An external
// stop signal triggers a best-effort cancel before the cancellation
// propagates out.
func (s *Supervisor) Await(ctx context.Context, symbol, orderID string) (*Result, error) {
	s.logger.Info("supervising-order",
		zap.String("order-id", orderID),
		zap.Duration("timeout", s.timeout))

	start := time.Now()
	var lastSeen *types.OrderRecord

	for {
		record, err := s.client.GetOrderHistory(ctx, orderID)
		switch {
		case err != nil && ctx.Err() != nil:
			return s.interrupted(symbol, orderID, lastSeen, ctx.Err())
		case err != nil:
			StatusPollErrorsTotal.Inc()
			s.logger.Warn("order-status-poll-failed",
				zap.String("order-id", orderID),
				zap.Error(err))
		case record != nil:
			lastSeen = record

			if record.Status == types.StatusFilled {
				FillLatencySeconds.Observe(time.Since(start).Seconds())
				s.logger.Info("order-filled",
					zap.String("order-id", orderID),
					zap.String("cum-exec-qty", record.CumExecQty),
					zap.Duration("fill-after", time.Since(start)))
				return &Result{Outcome: OutcomeFilled, Record: record}, nil
			}

			if record.Status.IsTerminal() {
				s.logger.Warn("order-ended-by-exchange",
					zap.String("order-id", orderID),
					zap.String("status", string(record.Status)))
				return &Result{Outcome: OutcomeEnded, Record: record}, nil
			}
		}

		if time.Since(start) > s.timeout {
			s.logger.Info("fill-timeout-cancelling-order",
				zap.String("order-id", orderID),
				zap.Duration("timeout", s.timeout))

			s.cancelOrder(ctx, symbol, orderID)

			return &Result{Outcome: OutcomeTimedOut, Record: lastSeen}, nil
		}

		err = sleepCtx(ctx, pollQuantum)
		if err != nil {
			return s.interrupted(symbol, orderID, lastSeen, err)
		}
	}
}

// cancelOrder issues exactly one cancel request. An "order not exists" reply
// is benign: the order resolved between the last status check and the cancel.
func (s *Supervisor) cancelOrder(ctx context.Context, symbol, orderID string) {
	err := s.client.CancelOrder(ctx, symbol, orderID)
	switch {
	case err == nil:
		CancelsIssuedTotal.Inc()
		s.logger.Info("order-cancelled", zap.String("order-id", orderID))
	case bybit.IsOrderNotFound(err):
		s.logger.Warn("order-already-resolved-at-cancel",
			zap.String("order-id", orderID))
	default:
		s.logger.Error("order-cancel-failed",
			zap.String("order-id", orderID),
			zap.Error(err))
	}
}

// interrupted handles an external stop signal: best-effort cancel on a fresh
// short-lived context (the run's context is already dead), then propagate.
func (s *Supervisor) interrupted(symbol, orderID string, lastSeen *types.OrderRecord, cause error) (*Result, error) {
	s.logger.Warn("order-supervision-interrupted", zap.String("order-id", orderID))

	cancelCtx, cancel := context.WithTimeout(context.Background(), cancelGrace)
	defer cancel()

	s.cancelOrder(cancelCtx, symbol, orderID)

	return &Result{Outcome: OutcomeInterrupted, Record: lastSeen}, cause
}
