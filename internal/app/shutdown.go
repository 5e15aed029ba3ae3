package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// shutdownTimeout bounds the HTTP server drain.
const shutdownTimeout = 5 * time.Second

// Shutdown releases everything the run held. Safe to call once the pipeline
// has returned, whatever state it returned in.
func (a *App) Shutdown() {
	a.logger.Debug("shutting-down")

	a.cancel()

	if a.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := a.httpServer.Shutdown(ctx)
		if err != nil {
			a.logger.Error("http-server-shutdown-failed", zap.Error(err))
		}
		cancel()
	}

	a.wg.Wait()

	err := a.journal.Close()
	if err != nil {
		a.logger.Error("journal-close-failed", zap.Error(err))
	}

	a.catalogCache.Close()

	_ = a.logger.Sync()
}
