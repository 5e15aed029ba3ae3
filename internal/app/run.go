package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mselser95/bybit-sniper/internal/execution"
	"github.com/mselser95/bybit-sniper/internal/sizing"
	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"go.uber.org/zap"
)

// catalogTTL keeps instrument metadata cached comfortably past the
// submission-to-resolution window.
const catalogTTL = 30 * time.Minute

// Run executes the pipeline end to end: preflight, launch wait, listing wait,
// price sample, sizing, submission, fill supervision. Stages run strictly in
// that order; each stage's failure gates the next. A single interrupt signal
// unwinds whichever stage is suspended.
func (a *App) Run() error {
	defer a.Shutdown()

	a.watchSignals()

	if a.httpServer != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			err := a.httpServer.Start()
			if err != nil {
				a.logger.Error("http-server-error", zap.Error(err))
			}
		}()
	}

	a.logger.Info("run-starting",
		zap.String("symbol", a.cfg.Symbol),
		zap.String("tokens-for-sale", a.cfg.TokensForSale.String()),
		zap.String("price-offset-percent", a.cfg.PriceOffset.String()),
		zap.Time("launch-time", a.cfg.LaunchTime))

	err := a.runPipeline()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			a.logger.Warn("run-interrupted")
			return err
		}

		a.logger.Error("run-failed", zap.Error(err))
		return err
	}

	a.logger.Info("run-complete")

	return nil
}

func (a *App) runPipeline() error {
	// Stage 1: credentials must be good before any timed work.
	a.healthChecker.SetStage("preflight")
	err := a.preflight.Check(a.ctx)
	if err != nil {
		return err
	}
	a.healthChecker.SetReady(true)

	// Stage 2: block until launch minus the pre-launch lead, on server time.
	a.healthChecker.SetStage("waiting-for-launch")
	err = a.scheduler.WaitForLaunch(a.ctx, a.cfg.LaunchTime, a.cfg.PreLaunchLead)
	if err != nil {
		return fmt.Errorf("launch scheduling: %w", err)
	}

	// Stage 3: poll until the pair is listed; keep the catalog snapshot.
	a.healthChecker.SetStage("waiting-for-listing")
	catalog, err := a.listingPoller.WaitForListing(a.ctx, a.cfg.Symbol)
	if err != nil {
		return err
	}
	a.catalogCache.PutAll(catalog, catalogTTL)

	// Stage 4: market reference price.
	a.healthChecker.SetStage("sampling-price")
	marketPrice, err := a.priceSampler.SamplePrice(a.ctx, a.cfg.Symbol)
	if err != nil {
		return err
	}

	// Stage 5: derive price and quantity at exchange precision.
	a.healthChecker.SetStage("sizing-order")
	inst, err := a.resolveInstrument(catalog)
	if err != nil {
		return err
	}

	req, err := a.sizer.BuildOrder(inst, marketPrice, a.cfg.PriceOffset, a.cfg.TokensForSale)
	if err != nil {
		return err
	}

	// Stage 6: place the order, bounded retry.
	a.healthChecker.SetStage("submitting-order")
	orderID, err := a.submitter.Submit(a.ctx, req)
	if err != nil {
		return err
	}

	// Stage 7: supervise until filled, ended, or timed out.
	a.healthChecker.SetStage("supervising-fill")
	result, err := a.supervisor.Await(a.ctx, a.cfg.Symbol, orderID)
	a.recordResult(result)

	return err
}

// resolveInstrument returns the target symbol's filters, preferring the
// cached entry and falling back to the listing snapshot.
func (a *App) resolveInstrument(catalog []bybit.Instrument) (*bybit.Instrument, error) {
	inst, found := a.catalogCache.Instrument(a.cfg.Symbol)
	if found {
		return inst, nil
	}

	a.logger.Debug("instrument-not-cached-using-snapshot", zap.String("symbol", a.cfg.Symbol))

	return sizing.FindInstrument(catalog, a.cfg.Symbol)
}

// recordResult journals the terminal order snapshot. Journal failures are
// logged, never escalated: the order already resolved on the exchange.
func (a *App) recordResult(result *execution.Result) {
	if result == nil {
		return
	}

	a.healthChecker.SetStage("recording-result")
	a.logger.Info("order-resolved", zap.String("outcome", string(result.Outcome)))

	if result.Record == nil {
		a.logger.Warn("no-final-order-record")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := a.journal.RecordOrder(ctx, result.Record)
	if err != nil {
		a.logger.Error("journal-record-failed", zap.Error(err))
	}
}

// watchSignals cancels the run context on the first SIGINT/SIGTERM. The
// cancellation is cooperative and global: every suspended stage observes it,
// and the fill supervisor issues its best-effort cancel before unwinding.
func (a *App) watchSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		select {
		case sig := <-sigChan:
			a.logger.Warn("shutdown-signal-received", zap.String("signal", sig.String()))
			a.cancel()
		case <-a.ctx.Done():
		}

		signal.Stop(sigChan)
	}()
}
