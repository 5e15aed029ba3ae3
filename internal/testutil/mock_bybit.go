package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/mselser95/bybit-sniper/pkg/bybit"
)

// MockBybitAPI is a mock HTTP server that simulates the Bybit v5 REST API
// with mutable exchange state, so tests can script listing appearance, fill
// progression and error injection.
type MockBybitAPI struct {
	*httptest.Server

	mu sync.Mutex

	// ServerNow is the exchange clock returned by /v5/market/time. Tests
	// advance it; when AutoAdvance is set it also moves forward by that
	// amount on every time query.
	ServerNow   time.Time
	AutoAdvance time.Duration

	// Instruments is the spot catalog. Empty means "not listed yet".
	Instruments []bybit.Instrument

	// LastPrice is returned by the tickers endpoint; empty means no ticker
	// yet (listing not trading), which produces an empty list.
	LastPrice string

	// WalletRetCode lets tests simulate credential rejections.
	WalletRetCode int
	WalletRetMsg  string

	// PlaceRetCodes is consumed one code per order placement; 0 places the
	// order. When exhausted, placements succeed.
	PlaceRetCodes []int

	// OrderStatuses is consumed one status per history poll for the placed
	// order. When exhausted the last status repeats. Empty strings mean
	// "no record yet".
	OrderStatuses []string

	// CancelRetCode is returned by the cancel endpoint (0 = success).
	CancelRetCode int

	// Counters for assertions.
	TimeCalls    int
	CatalogCalls int
	TickerCalls  int
	PlaceCalls   int
	StatusCalls  int
	CancelCalls  int

	placedOrderID string
	statusIdx     int
}

// NewMockBybitAPI creates a started mock exchange.
func NewMockBybitAPI() *MockBybitAPI {
	mock := &MockBybitAPI{
		ServerNow: time.Now().UTC(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v5/market/time", mock.handleTime)
	mux.HandleFunc("/v5/market/instruments-info", mock.handleInstruments)
	mux.HandleFunc("/v5/market/tickers", mock.handleTickers)
	mux.HandleFunc("/v5/account/wallet-balance", mock.handleWallet)
	mux.HandleFunc("/v5/order/create", mock.handleCreate)
	mux.HandleFunc("/v5/order/history", mock.handleHistory)
	mux.HandleFunc("/v5/order/cancel", mock.handleCancel)

	mock.Server = httptest.NewServer(mux)

	return mock
}

// ListInstrument adds a spot instrument to the catalog.
func (m *MockBybitAPI) ListInstrument(symbol, tickSize, qtyStep string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Instruments = append(m.Instruments, bybit.Instrument{
		Symbol:      symbol,
		Status:      "Trading",
		PriceFilter: bybit.PriceFilter{TickSize: tickSize},
		LotSizeFilter: bybit.LotSizeFilter{
			BasePrecision: qtyStep,
			MinOrderQty:   qtyStep,
		},
	})
}

// PlacedOrderID returns the ID assigned to the placed order, if any.
func (m *MockBybitAPI) PlacedOrderID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.placedOrderID
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func retErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, map[string]any{"retCode": code, "retMsg": msg, "result": map[string]any{}})
}

func (m *MockBybitAPI) handleTime(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.TimeCalls++
	now := m.ServerNow
	m.ServerNow = m.ServerNow.Add(m.AutoAdvance)
	m.mu.Unlock()

	writeJSON(w, map[string]any{
		"retCode": 0,
		"retMsg":  "OK",
		"result": map[string]string{
			"timeSecond": strconv.FormatInt(now.Unix(), 10),
			"timeNano":   strconv.FormatInt(now.UnixNano(), 10),
		},
	})
}

func (m *MockBybitAPI) handleInstruments(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.CatalogCalls++
	list := make([]bybit.Instrument, len(m.Instruments))
	copy(list, m.Instruments)
	m.mu.Unlock()

	writeJSON(w, map[string]any{
		"retCode": 0,
		"retMsg":  "OK",
		"result":  map[string]any{"category": "spot", "list": list},
	})
}

func (m *MockBybitAPI) handleTickers(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.TickerCalls++
	price := m.LastPrice
	m.mu.Unlock()

	list := []map[string]string{}
	if price != "" {
		list = append(list, map[string]string{
			"symbol":    r.URL.Query().Get("symbol"),
			"lastPrice": price,
		})
	}

	writeJSON(w, map[string]any{
		"retCode": 0,
		"retMsg":  "OK",
		"result":  map[string]any{"category": "spot", "list": list},
	})
}

func (m *MockBybitAPI) handleWallet(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-BAPI-SIGN") == "" {
		retErr(w, bybit.RetCodeSignError, "missing signature")
		return
	}

	m.mu.Lock()
	code, msg := m.WalletRetCode, m.WalletRetMsg
	m.mu.Unlock()

	if code != 0 {
		retErr(w, code, msg)
		return
	}

	writeJSON(w, map[string]any{
		"retCode": 0,
		"retMsg":  "OK",
		"result": map[string]any{
			"list": []map[string]any{{
				"accountType": "UNIFIED",
				"totalEquity": "1000",
			}},
		},
	})
}

func (m *MockBybitAPI) handleCreate(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.PlaceCalls++

	code := 0
	if len(m.PlaceRetCodes) > 0 {
		code = m.PlaceRetCodes[0]
		m.PlaceRetCodes = m.PlaceRetCodes[1:]
	}

	if code != 0 {
		m.mu.Unlock()
		retErr(w, code, fmt.Sprintf("injected error %d", code))
		return
	}

	m.placedOrderID = fmt.Sprintf("mock-order-%d", m.PlaceCalls)
	orderID := m.placedOrderID
	m.mu.Unlock()

	writeJSON(w, map[string]any{
		"retCode": 0,
		"retMsg":  "OK",
		"result":  map[string]string{"orderId": orderID},
	})
}

func (m *MockBybitAPI) handleHistory(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.StatusCalls++

	status := ""
	if len(m.OrderStatuses) > 0 {
		if m.statusIdx >= len(m.OrderStatuses) {
			status = m.OrderStatuses[len(m.OrderStatuses)-1]
		} else {
			status = m.OrderStatuses[m.statusIdx]
			m.statusIdx++
		}
	}
	orderID := m.placedOrderID
	m.mu.Unlock()

	list := []map[string]string{}
	if status != "" {
		list = append(list, map[string]string{
			"symbol":      "MOCKUSDT",
			"orderId":     orderID,
			"orderStatus": status,
			"side":        "Sell",
			"orderType":   "Limit",
			"qty":         "170",
			"price":       "99",
			"cumExecQty":  "0",
			"timeInForce": "GTC",
		})
	}

	writeJSON(w, map[string]any{
		"retCode": 0,
		"retMsg":  "OK",
		"result":  map[string]any{"category": "spot", "list": list},
	})
}

func (m *MockBybitAPI) handleCancel(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.CancelCalls++
	code := m.CancelRetCode
	orderID := m.placedOrderID
	m.mu.Unlock()

	if code != 0 {
		retErr(w, code, "injected cancel error")
		return
	}

	writeJSON(w, map[string]any{
		"retCode": 0,
		"retMsg":  "OK",
		"result":  map[string]string{"orderId": orderID},
	})
}
