package market

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ListingPollsTotal tracks successful instrument catalog fetches.
	ListingPollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_market_listing_polls_total",
		Help: "Total number of instrument catalog polls",
	})

	// ListingPollErrorsTotal tracks failed instrument catalog fetches.
	ListingPollErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_market_listing_poll_errors_total",
		Help: "Total number of failed instrument catalog polls",
	})

	// PriceSamplesTotal tracks successful ticker price samples.
	PriceSamplesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_market_price_samples_total",
		Help: "Total number of successful ticker price samples",
	})

	// PriceSampleErrorsTotal tracks failed ticker price samples.
	PriceSampleErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sniper_market_price_sample_errors_total",
		Help: "Total number of failed ticker price samples",
	})
)
