package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// pollQuantum is how often the remaining wait is re-measured against the
// exchange clock.
const pollQuantum = 1 * time.Second

// TimeSource provides the exchange's clock, the clock of record for launch
// timing. The local clock is never consulted so skew against the matching
// engine cannot shift the schedule.
type TimeSource interface {
	GetServerTime(ctx context.Context) (time.Time, error)
}

// Scheduler blocks until a configured launch instant, minus a pre-launch
// lead, as measured by exchange server time.
type Scheduler struct {
	clock  TimeSource
	logger *zap.Logger
}

// New creates a new Scheduler.
func New(clock TimeSource, logger *zap.Logger) *Scheduler {
	return &Scheduler{clock: clock, logger: logger}
}

// WaitForLaunch blocks until server time reaches launchTime minus lead.
// A server-time fetch failure is fatal for the run: proceeding on stale time
// data would defeat the point of scheduling against the exchange clock.
// Context cancellation propagates immediately.
func (s *Scheduler) WaitForLaunch(ctx context.Context, launchTime time.Time, lead time.Duration) error {
	waitUntil := launchTime.Add(-lead)

	serverNow, err := s.clock.GetServerTime(ctx)
	if err != nil {
		return fmt.Errorf("fetch server time: %w", err)
	}

	if !serverNow.Before(waitUntil) {
		s.logger.Info("launch-window-already-open",
			zap.Time("server-now", serverNow),
			zap.Time("wait-until", waitUntil))
		return nil
	}

	s.logger.Info("waiting-for-launch",
		zap.Time("launch-time", launchTime),
		zap.Duration("lead", lead),
		zap.Duration("remaining", waitUntil.Sub(serverNow)))

	timer := time.NewTimer(pollQuantum)
	defer timer.Stop()

	for serverNow.Before(waitUntil) {
		remaining := waitUntil.Sub(serverNow)
		printCountdown(remaining)

		timer.Reset(pollQuantum)
		select {
		case <-ctx.Done():
			fmt.Println()
			s.logger.Warn("launch-wait-cancelled")
			return ctx.Err()
		case <-timer.C:
		}

		serverNow, err = s.clock.GetServerTime(ctx)
		if err != nil {
			fmt.Println()
			return fmt.Errorf("fetch server time: %w", err)
		}
	}

	fmt.Println()
	s.logger.Info("launch-window-reached",
		zap.Duration("lead", lead),
		zap.Time("server-now", serverNow))

	return nil
}

// printCountdown overwrites a single stdout line with the remaining wait,
// the one piece of output meant for a human watching the terminal.
func printCountdown(remaining time.Duration) {
	total := int(remaining.Seconds())
	if total < 0 {
		total = 0
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	fmt.Printf("\rWaiting for launch: %02d:%02d:%02d", hours, minutes, seconds)
}
