package bybit

import (
	"errors"
	"fmt"
)

// Known Bybit v5 API return codes.
const (
	RetCodeOK             = 0
	RetCodeInvalidAPIKey  = 10003
	RetCodeSignError      = 10004
	RetCodeInvalidPerms   = 10005
	RetCodeAPIKeyExpired  = 33004
	RetCodeOrderNotExists = 170213
)

// APIError represents a non-zero retCode returned by the Bybit API.
type APIError struct {
	RetCode int
	RetMsg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bybit API error %d: %s", e.RetCode, e.RetMsg)
}

// IsAuthError reports whether err is a credential or permission rejection.
// These are never worth retrying: the key has to be fixed first.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.RetCode {
	case RetCodeInvalidAPIKey, RetCodeSignError, RetCodeInvalidPerms, RetCodeAPIKeyExpired:
		return true
	}

	return false
}

// IsOrderNotFound reports whether err means the order no longer exists on the
// exchange. Seen when cancelling an order that filled or was cancelled between
// the last status check and the cancel attempt.
func IsOrderNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.RetCode == RetCodeOrderNotExists
}
