package cache

import (
	"time"

	"github.com/mselser95/bybit-sniper/pkg/bybit"
)

// Catalog caches per-symbol instrument metadata from the exchange's
// instruments-info endpoint, so filter lookups after the listing is confirmed
// don't re-fetch the full catalog.
type Catalog interface {
	// Instrument retrieves a cached instrument by symbol.
	Instrument(symbol string) (*bybit.Instrument, bool)

	// Put stores an instrument with a TTL.
	Put(inst bybit.Instrument, ttl time.Duration) bool

	// PutAll stores every instrument of a catalog snapshot.
	PutAll(catalog []bybit.Instrument, ttl time.Duration)

	// Close closes the cache and releases resources.
	Close()
}
