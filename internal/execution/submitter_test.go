package execution

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mselser95/bybit-sniper/internal/sizing"
	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"github.com/mselser95/bybit-sniper/pkg/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// fakeOrderAPI is a scripted OrderAPI for submitter and supervisor tests.
type fakeOrderAPI struct {
	mu sync.Mutex

	placeErrs   []error // consumed one per placement; nil entry = success
	placeCalls  int
	placedSell  bool
	statusQueue []statusStep // consumed one per poll; last repeats
	statusCalls int
	cancelErr   error
	cancelCalls int
}

type statusStep struct {
	status types.OrderStatus // "" = exchange has no record yet
	err    error
}

func (f *fakeOrderAPI) PlaceLimitSell(_ context.Context, _ string, _, _ decimal.Decimal) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.placeCalls
	f.placeCalls++

	if idx < len(f.placeErrs) && f.placeErrs[idx] != nil {
		return "", f.placeErrs[idx]
	}

	f.placedSell = true

	return "order-1337", nil
}

func (f *fakeOrderAPI) GetOrderHistory(_ context.Context, orderID string) (*types.OrderRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.statusCalls
	if idx >= len(f.statusQueue) {
		idx = len(f.statusQueue) - 1
	}
	f.statusCalls++

	if idx < 0 {
		return nil, nil
	}

	step := f.statusQueue[idx]
	if step.err != nil {
		return nil, step.err
	}

	if step.status == "" {
		return nil, nil
	}

	return &types.OrderRecord{
		Symbol:  "ALTUSDT",
		OrderID: orderID,
		Status:  step.status,
		Qty:     "170",
		Price:   "99.00",
	}, nil
}

func (f *fakeOrderAPI) CancelOrder(_ context.Context, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancelCalls++

	return f.cancelErr
}

func (f *fakeOrderAPI) counts() (place, status, cancel int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.placeCalls, f.statusCalls, f.cancelCalls
}

func testOrderRequest() *sizing.OrderRequest {
	return &sizing.OrderRequest{
		Symbol: "ALTUSDT",
		Qty:    decimal.RequireFromString("170"),
		Price:  decimal.RequireFromString("99.00"),
		Market: decimal.RequireFromString("100"),
	}
}

func TestSubmit_SucceedsFirstAttempt(t *testing.T) {
	api := &fakeOrderAPI{}
	submitter := NewSubmitter(api, zap.NewNop())

	orderID, err := submitter.Submit(context.Background(), testOrderRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if orderID != "order-1337" {
		t.Errorf("expected order-1337, got %s", orderID)
	}

	place, _, _ := api.counts()
	if place != 1 {
		t.Errorf("expected 1 placement call, got %d", place)
	}
}

func TestSubmit_SucceedsOnThirdAttempt(t *testing.T) {
	api := &fakeOrderAPI{placeErrs: []error{
		&bybit.APIError{RetCode: 170131, RetMsg: "Insufficient balance"},
		errors.New("connection reset"),
		nil,
	}}
	submitter := NewSubmitter(api, zap.NewNop())

	orderID, err := submitter.Submit(context.Background(), testOrderRequest())
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}

	if orderID != "order-1337" {
		t.Errorf("expected order-1337, got %s", orderID)
	}

	place, _, _ := api.counts()
	if place != 3 {
		t.Errorf("expected 3 placement calls, got %d", place)
	}
}

func TestSubmit_ExhaustsAttempts(t *testing.T) {
	reject := &bybit.APIError{RetCode: 170140, RetMsg: "Order qty exceeded upper limit"}
	api := &fakeOrderAPI{placeErrs: []error{reject, reject, reject}}
	submitter := NewSubmitter(api, zap.NewNop())

	_, err := submitter.Submit(context.Background(), testOrderRequest())
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}

	place, _, _ := api.counts()
	if place != maxAttempts {
		t.Errorf("expected exactly %d placement calls, got %d", maxAttempts, place)
	}
}

func TestSubmit_ContextCancelBetweenAttempts(t *testing.T) {
	api := &fakeOrderAPI{placeErrs: []error{
		errors.New("connection reset"),
		errors.New("connection reset"),
		nil,
	}}
	submitter := NewSubmitter(api, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	_, err := submitter.Submit(ctx, testOrderRequest())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	place, _, _ := api.counts()
	if place >= maxAttempts {
		t.Errorf("expected cancellation to cut retries short, got %d calls", place)
	}
}
