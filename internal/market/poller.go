package market

import (
	"context"
	"time"

	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"go.uber.org/zap"
)

// CatalogSource fetches the exchange's spot instrument catalog.
type CatalogSource interface {
	GetInstrumentsInfo(ctx context.Context) ([]bybit.Instrument, error)
}

// Poller waits for a symbol to appear in the spot instrument catalog.
type Poller struct {
	client   CatalogSource
	interval time.Duration
	logger   *zap.Logger
}

// NewPoller creates a new listing Poller.
func NewPoller(client CatalogSource, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		client:   client,
		interval: interval,
		logger:   logger,
	}
}

// WaitForListing polls the instrument catalog until the symbol is present and
// returns that catalog snapshot for reuse. Listing time is inherently
// uncertain, so an absent symbol and a transport error are treated the same
// way: sleep the poll interval and try again, with no attempt cap. Only
// context cancellation stops the loop.
func (p *Poller) WaitForListing(ctx context.Context, symbol string) ([]bybit.Instrument, error) {
	p.logger.Info("waiting-for-listing",
		zap.String("symbol", symbol),
		zap.Duration("interval", p.interval))

	for {
		catalog, err := p.client.GetInstrumentsInfo(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Warn("listing-wait-cancelled", zap.String("symbol", symbol))
				return nil, ctx.Err()
			}

			ListingPollErrorsTotal.Inc()
			p.logger.Error("instrument-catalog-fetch-failed",
				zap.Error(err),
				zap.Duration("retry-in", p.interval))
		} else {
			ListingPollsTotal.Inc()

			if containsSymbol(catalog, symbol) {
				p.logger.Info("listing-confirmed",
					zap.String("symbol", symbol),
					zap.Int("catalog-size", len(catalog)))
				return catalog, nil
			}

			p.logger.Debug("symbol-not-listed-yet",
				zap.String("symbol", symbol),
				zap.Int("catalog-size", len(catalog)))
		}

		err = sleepCtx(ctx, p.interval)
		if err != nil {
			p.logger.Warn("listing-wait-cancelled", zap.String("symbol", symbol))
			return nil, err
		}
	}
}

func containsSymbol(catalog []bybit.Instrument, symbol string) bool {
	for i := range catalog {
		if catalog[i].Symbol == symbol {
			return true
		}
	}

	return false
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
