package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"go.uber.org/zap"
)

// RistrettoCatalog is a Catalog implementation backed by Ristretto.
type RistrettoCatalog struct {
	cache  *ristretto.Cache
	logger *zap.Logger
}

// RistrettoConfig holds configuration for the Ristretto-backed catalog.
type RistrettoConfig struct {
	NumCounters int64 // number of keys to track frequency (10x max items)
	MaxCost     int64 // maximum number of cached instruments
	BufferItems int64 // number of keys per Get buffer
	Logger      *zap.Logger
}

// NewRistrettoCatalog creates a new Ristretto-backed instrument catalog cache.
func NewRistrettoCatalog(cfg *RistrettoConfig) (*RistrettoCatalog, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	return &RistrettoCatalog{
		cache:  cache,
		logger: cfg.Logger,
	}, nil
}

// Instrument retrieves a cached instrument by symbol.
func (r *RistrettoCatalog) Instrument(symbol string) (*bybit.Instrument, bool) {
	value, found := r.cache.Get(symbol)
	if !found {
		CacheMissesTotal.Inc()
		r.logger.Debug("instrument-cache-miss", zap.String("symbol", symbol))
		return nil, false
	}

	inst, ok := value.(bybit.Instrument)
	if !ok {
		CacheMissesTotal.Inc()
		return nil, false
	}

	CacheHitsTotal.Inc()
	r.logger.Debug("instrument-cache-hit", zap.String("symbol", symbol))

	return &inst, true
}

// Put stores an instrument with a TTL. Cost 1 per instrument: we count items,
// not bytes.
func (r *RistrettoCatalog) Put(inst bybit.Instrument, ttl time.Duration) bool {
	success := r.cache.SetWithTTL(inst.Symbol, inst, 1, ttl)
	if success {
		CacheSetsTotal.Inc()
	}
	return success
}

// PutAll stores every instrument of a catalog snapshot and waits for the
// writes to become visible.
func (r *RistrettoCatalog) PutAll(catalog []bybit.Instrument, ttl time.Duration) {
	for i := range catalog {
		r.Put(catalog[i], ttl)
	}

	r.cache.Wait()

	r.logger.Debug("instrument-catalog-cached", zap.Int("instruments", len(catalog)))
}

// Wait blocks until pending writes are visible. Exposed for tests.
func (r *RistrettoCatalog) Wait() {
	r.cache.Wait()
}

// Close closes the cache and releases resources.
func (r *RistrettoCatalog) Close() {
	r.cache.Close()
	r.logger.Debug("instrument-cache-closed")
}
