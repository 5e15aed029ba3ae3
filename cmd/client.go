package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mselser95/bybit-sniper/pkg/bybit"
	"github.com/mselser95/bybit-sniper/pkg/config"
	"go.uber.org/zap"
)

// loadDotEnv loads a .env file when one exists. Missing files are fine; the
// environment may already be populated.
func loadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}

// newLogger builds the shared zap logger for CLI commands.
func newLogger() (*zap.Logger, error) {
	logger, err := config.NewLogger()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return logger, nil
}

// newPublicClient builds a Bybit client for unauthenticated market-data
// commands. No credentials required.
func newPublicClient(logger *zap.Logger) *bybit.Client {
	return bybit.NewClient(&bybit.Config{
		BaseURL: os.Getenv("BYBIT_BASE_URL"),
		Logger:  logger,
	})
}

// newSignedClient builds a Bybit client for commands that hit private
// endpoints. Only the credentials are required here; the full trading plan is
// validated by the run command alone.
func newSignedClient(logger *zap.Logger) (*bybit.Client, error) {
	apiKey := os.Getenv("BYBIT_API_KEY")
	apiSecret := os.Getenv("BYBIT_API_SECRET")

	if apiKey == "" {
		return nil, errors.New("BYBIT_API_KEY not set")
	}
	if apiSecret == "" {
		return nil, errors.New("BYBIT_API_SECRET not set")
	}

	return bybit.NewClient(&bybit.Config{
		BaseURL:   os.Getenv("BYBIT_BASE_URL"),
		APIKey:    apiKey,
		APISecret: apiSecret,
		Logger:    logger,
	}), nil
}
