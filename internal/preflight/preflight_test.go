package preflight

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"go.uber.org/zap"
)

type fakeAccount struct {
	err   error
	calls int
}

func (f *fakeAccount) GetWalletBalance(_ context.Context) ([]bybit.WalletAccount, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return []bybit.WalletAccount{{AccountType: "UNIFIED"}}, nil
}

func TestCheck_Passes(t *testing.T) {
	account := &fakeAccount{}
	checker := New(account, zap.NewNop())

	if err := checker.Check(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if account.calls != 1 {
		t.Errorf("expected a single wallet call, got %d", account.calls)
	}
}

func TestCheck_AuthErrorNamesCredentials(t *testing.T) {
	account := &fakeAccount{err: &bybit.APIError{RetCode: bybit.RetCodeInvalidAPIKey, RetMsg: "API key is invalid"}}
	checker := New(account, zap.NewNop())

	err := checker.Check(context.Background())
	if err == nil {
		t.Fatal("expected error for rejected key")
	}

	if !strings.Contains(err.Error(), "API key rejected") {
		t.Errorf("expected credential guidance in error, got %q", err)
	}
}

func TestCheck_TransportErrorIsFatal(t *testing.T) {
	account := &fakeAccount{err: errors.New("dial tcp: connection refused")}
	checker := New(account, zap.NewNop())

	if err := checker.Check(context.Background()); err == nil {
		t.Fatal("expected error when the account call fails")
	}
}

func TestCheck_NoRetry(t *testing.T) {
	account := &fakeAccount{err: &bybit.APIError{RetCode: bybit.RetCodeSignError, RetMsg: "error sign!"}}
	checker := New(account, zap.NewNop())

	_ = checker.Check(context.Background())

	if account.calls != 1 {
		t.Errorf("preflight must not retry, got %d calls", account.calls)
	}
}
