package app

import (
	"testing"
	"time"

	"github.com/mselser95/bybit-sniper/internal/testutil"
	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"github.com/mselser95/bybit-sniper/pkg/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		LogLevel:           "info",
		BybitBaseURL:       baseURL,
		BybitAPIKey:        "test-key",
		BybitAPISecret:     "test-secret",
		Symbol:             "MOCKUSDT",
		TokensForSale:      decimal.RequireFromString("170"),
		PriceOffset:        decimal.RequireFromString("1.0"),
		LaunchTime:         time.Now().UTC().Add(-time.Minute),
		PreLaunchLead:      10 * time.Second,
		PairCheckInterval:  20 * time.Millisecond,
		PriceCheckInterval: 20 * time.Millisecond,
		OrderTimeout:       10 * time.Second,
		JournalMode:        "console",
	}
}

func TestRun_FilledOrder(t *testing.T) {
	mock := testutil.NewMockBybitAPI()
	defer mock.Close()

	mock.ListInstrument("MOCKUSDT", "0.01", "1")
	mock.LastPrice = "100"
	mock.OrderStatuses = []string{"Filled"}

	application, err := New(testConfig(mock.URL), zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	if err := application.Run(); err != nil {
		t.Fatalf("expected clean run, got %v", err)
	}

	if mock.PlaceCalls != 1 {
		t.Errorf("expected 1 order placement, got %d", mock.PlaceCalls)
	}
	if mock.CancelCalls != 0 {
		t.Errorf("a filled order must not be cancelled, got %d cancels", mock.CancelCalls)
	}
	if mock.PlacedOrderID() == "" {
		t.Error("expected an order to have been placed")
	}
}

func TestRun_ListingAppearsLate(t *testing.T) {
	mock := testutil.NewMockBybitAPI()
	defer mock.Close()

	// Symbol not listed at start; appears while the poller is running.
	mock.LastPrice = "100"
	mock.OrderStatuses = []string{"New", "Filled"}

	go func() {
		time.Sleep(100 * time.Millisecond)
		mock.ListInstrument("MOCKUSDT", "0.01", "1")
	}()

	application, err := New(testConfig(mock.URL), zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	if err := application.Run(); err != nil {
		t.Fatalf("expected clean run, got %v", err)
	}

	if mock.CatalogCalls < 2 {
		t.Errorf("expected the poller to retry until the listing appeared, got %d catalog calls", mock.CatalogCalls)
	}
}

func TestRun_FillTimeoutCancelsOrder(t *testing.T) {
	mock := testutil.NewMockBybitAPI()
	defer mock.Close()

	mock.ListInstrument("MOCKUSDT", "0.01", "1")
	mock.LastPrice = "100"
	mock.OrderStatuses = []string{"New"} // never fills

	cfg := testConfig(mock.URL)
	cfg.OrderTimeout = 100 * time.Millisecond

	application, err := New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	if err := application.Run(); err != nil {
		t.Fatalf("a timed-out run still ends cleanly, got %v", err)
	}

	if mock.CancelCalls != 1 {
		t.Errorf("expected exactly one cancel on timeout, got %d", mock.CancelCalls)
	}
}

func TestResolveInstrument_PrefersCache(t *testing.T) {
	mock := testutil.NewMockBybitAPI()
	defer mock.Close()

	application, err := New(testConfig(mock.URL), zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	defer application.Shutdown()

	cached := bybit.Instrument{
		Symbol:      "MOCKUSDT",
		Status:      "Trading",
		PriceFilter: bybit.PriceFilter{TickSize: "0.001"},
	}
	application.catalogCache.PutAll([]bybit.Instrument{cached}, time.Minute)

	// A stale snapshot with different filters must lose to the cache entry.
	snapshot := []bybit.Instrument{{
		Symbol:      "MOCKUSDT",
		PriceFilter: bybit.PriceFilter{TickSize: "0.01"},
	}}

	inst, err := application.resolveInstrument(snapshot)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if inst.PriceFilter.TickSize != "0.001" {
		t.Errorf("expected the cached entry, got tick size %s", inst.PriceFilter.TickSize)
	}
}

func TestResolveInstrument_FallsBackToSnapshot(t *testing.T) {
	mock := testutil.NewMockBybitAPI()
	defer mock.Close()

	application, err := New(testConfig(mock.URL), zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	defer application.Shutdown()

	snapshot := []bybit.Instrument{{
		Symbol:      "MOCKUSDT",
		PriceFilter: bybit.PriceFilter{TickSize: "0.01"},
	}}

	inst, err := application.resolveInstrument(snapshot)
	if err != nil {
		t.Fatalf("expected snapshot fallback, got %v", err)
	}

	if inst.Symbol != "MOCKUSDT" || inst.PriceFilter.TickSize != "0.01" {
		t.Errorf("unexpected instrument %+v", inst)
	}

	// Missing from both cache and snapshot is a structural failure.
	if _, err := application.resolveInstrument(nil); err == nil {
		t.Error("expected error when the symbol is nowhere to be found")
	}
}

func TestRun_PreflightFailureAborts(t *testing.T) {
	mock := testutil.NewMockBybitAPI()
	defer mock.Close()

	mock.ListInstrument("MOCKUSDT", "0.01", "1")
	mock.LastPrice = "100"
	mock.WalletRetCode = 10003
	mock.WalletRetMsg = "API key is invalid."

	application, err := New(testConfig(mock.URL), zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	if err := application.Run(); err == nil {
		t.Fatal("expected run to abort on rejected credentials")
	}

	if mock.PlaceCalls != 0 {
		t.Errorf("no order may be placed after a failed preflight, got %d", mock.PlaceCalls)
	}
}
