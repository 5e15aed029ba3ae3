package market

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceSource fetches the last traded price for a symbol.
type PriceSource interface {
	GetTickerPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// Sampler produces the market reference price for a symbol.
type Sampler struct {
	client   PriceSource
	interval time.Duration
	logger   *zap.Logger
}

// NewSampler creates a new price Sampler.
func NewSampler(client PriceSource, interval time.Duration, logger *zap.Logger) *Sampler {
	return &Sampler{
		client:   client,
		interval: interval,
		logger:   logger,
	}
}

// SamplePrice fetches the latest traded price, retrying on any error after
// the configured interval until it succeeds or the context is cancelled.
// Right after a listing opens the ticker can briefly 404 or return an empty
// list, so errors here are always transient.
func (s *Sampler) SamplePrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	for {
		price, err := s.client.GetTickerPrice(ctx, symbol)
		if err == nil {
			PriceSamplesTotal.Inc()
			s.logger.Info("market-price-sampled",
				zap.String("symbol", symbol),
				zap.String("price", price.String()))
			return price, nil
		}

		if ctx.Err() != nil {
			return decimal.Zero, ctx.Err()
		}

		PriceSampleErrorsTotal.Inc()
		s.logger.Error("price-fetch-failed",
			zap.String("symbol", symbol),
			zap.Error(err),
			zap.Duration("retry-in", s.interval))

		err = sleepCtx(ctx, s.interval)
		if err != nil {
			return decimal.Zero, err
		}
	}
}
