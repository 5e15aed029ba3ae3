package preflight

import (
	"context"
	"fmt"

	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"go.uber.org/zap"
)

// AccountSource performs a privileged account call.
type AccountSource interface {
	GetWalletBalance(ctx context.Context) ([]bybit.WalletAccount, error)
}

// Checker validates exchange credentials before any time-sensitive work.
type Checker struct {
	client AccountSource
	logger *zap.Logger
}

// New creates a new preflight Checker.
func New(client AccountSource, logger *zap.Logger) *Checker {
	return &Checker{client: client, logger: logger}
}

// Check issues one privileged wallet-balance call. Any failure aborts the
// run: credentials have to be fixed before committing to the timed sequence,
// and there is no point retrying a rejected key at launch time.
func (c *Checker) Check(ctx context.Context) error {
	c.logger.Info("preflight-checking-api-keys")

	_, err := c.client.GetWalletBalance(ctx)
	if err != nil {
		if bybit.IsAuthError(err) {
			return fmt.Errorf("API key rejected, check key, secret and permissions: %w", err)
		}

		return fmt.Errorf("preflight account check failed: %w", err)
	}

	c.logger.Info("preflight-api-keys-valid")

	return nil
}
