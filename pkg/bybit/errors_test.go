package bybit

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsAuthError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid key", &APIError{RetCode: RetCodeInvalidAPIKey}, true},
		{"bad signature", &APIError{RetCode: RetCodeSignError}, true},
		{"missing permission", &APIError{RetCode: RetCodeInvalidPerms}, true},
		{"expired key", &APIError{RetCode: RetCodeAPIKeyExpired}, true},
		{"order not exists", &APIError{RetCode: RetCodeOrderNotExists}, false},
		{"wrapped auth", fmt.Errorf("get wallet balance: %w", &APIError{RetCode: RetCodeInvalidAPIKey}), true},
		{"transport", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAuthError(tc.err); got != tc.want {
				t.Errorf("IsAuthError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsOrderNotFound(t *testing.T) {
	if !IsOrderNotFound(&APIError{RetCode: RetCodeOrderNotExists}) {
		t.Error("170213 must classify as order-not-found")
	}

	wrapped := fmt.Errorf("cancel order: %w", &APIError{RetCode: RetCodeOrderNotExists})
	if !IsOrderNotFound(wrapped) {
		t.Error("wrapped 170213 must still classify")
	}

	if IsOrderNotFound(&APIError{RetCode: RetCodeInvalidAPIKey}) {
		t.Error("auth errors must not classify as order-not-found")
	}

	if IsOrderNotFound(errors.New("timeout")) {
		t.Error("transport errors must not classify as order-not-found")
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{RetCode: 170213, RetMsg: "Order does not exist."}

	want := "bybit API error 170213: Order does not exist."
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
