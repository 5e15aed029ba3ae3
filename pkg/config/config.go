package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// launchTimeLayout is the wall-clock format for LAUNCH_TIME, interpreted as UTC.
const launchTimeLayout = "2006-01-02 15:04:05"

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string // empty disables the metrics/health HTTP server

	// Bybit API
	BybitBaseURL   string
	BybitAPIKey    string
	BybitAPISecret string

	// Trading plan. Amount and offset are exact decimals so price and
	// quantity arithmetic never goes through binary floating point.
	Symbol        string // normalized, e.g. "ALTUSDT"
	TokensForSale decimal.Decimal
	PriceOffset   decimal.Decimal // percent below market price
	LaunchTime    time.Time       // UTC

	// Timing
	PreLaunchLead      time.Duration // start listing checks this long before launch
	PairCheckInterval  time.Duration
	PriceCheckInterval time.Duration
	OrderTimeout       time.Duration

	// Journal
	JournalMode  string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: os.Getenv("HTTP_PORT"),

		// Bybit API
		BybitBaseURL:   getEnvOrDefault("BYBIT_BASE_URL", "https://api.bybit.com"),
		BybitAPIKey:    os.Getenv("BYBIT_API_KEY"),
		BybitAPISecret: os.Getenv("BYBIT_API_SECRET"),

		// Trading plan
		Symbol: NormalizeSymbol(os.Getenv("SYMBOL")),

		// Timing defaults
		PreLaunchLead:      getDurationOrDefault("PRE_LAUNCH_LEAD", 10*time.Second),
		PairCheckInterval:  getDurationOrDefault("PAIR_CHECK_INTERVAL", 500*time.Millisecond),
		PriceCheckInterval: getDurationOrDefault("PRICE_CHECK_INTERVAL", 1*time.Second),
		OrderTimeout:       getDurationOrDefault("ORDER_TIMEOUT", 30*time.Second),

		// Journal defaults
		JournalMode:  getEnvOrDefault("JOURNAL_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "sniper"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", ""),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "bybit_sniper"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	tokens, err := decimal.NewFromString(getEnvOrDefault("TOKENS_FOR_SALE", "0"))
	if err != nil {
		return nil, fmt.Errorf("parse TOKENS_FOR_SALE: %w", err)
	}
	cfg.TokensForSale = tokens

	offset, err := decimal.NewFromString(getEnvOrDefault("PRICE_OFFSET_PERCENT", "1.0"))
	if err != nil {
		return nil, fmt.Errorf("parse PRICE_OFFSET_PERCENT: %w", err)
	}
	cfg.PriceOffset = offset

	launchStr := os.Getenv("LAUNCH_TIME")
	if launchStr != "" {
		launch, err := time.Parse(launchTimeLayout, launchStr)
		if err != nil {
			return nil, fmt.Errorf("parse LAUNCH_TIME %q (want %q, UTC): %w", launchStr, launchTimeLayout, err)
		}
		cfg.LaunchTime = launch.UTC()
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// NormalizeSymbol converts operator input like "alt/usdt" to the exchange
// form "ALTUSDT".
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(symbol, "/", "")))
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.BybitAPIKey == "" {
		return fmt.Errorf("BYBIT_API_KEY cannot be empty")
	}

	if c.BybitAPISecret == "" {
		return fmt.Errorf("BYBIT_API_SECRET cannot be empty")
	}

	if c.Symbol == "" {
		return fmt.Errorf("SYMBOL cannot be empty")
	}

	if !c.TokensForSale.IsPositive() {
		return fmt.Errorf("TOKENS_FOR_SALE must be positive, got %s", c.TokensForSale)
	}

	if c.PriceOffset.IsNegative() || c.PriceOffset.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return fmt.Errorf("PRICE_OFFSET_PERCENT must be in [0, 100), got %s", c.PriceOffset)
	}

	if c.LaunchTime.IsZero() {
		return fmt.Errorf("LAUNCH_TIME must be set (format %q, UTC)", launchTimeLayout)
	}

	if c.PairCheckInterval <= 0 {
		return fmt.Errorf("PAIR_CHECK_INTERVAL must be positive, got %s", c.PairCheckInterval)
	}

	if c.PriceCheckInterval <= 0 {
		return fmt.Errorf("PRICE_CHECK_INTERVAL must be positive, got %s", c.PriceCheckInterval)
	}

	if c.OrderTimeout <= 0 {
		return fmt.Errorf("ORDER_TIMEOUT must be positive, got %s", c.OrderTimeout)
	}

	if c.JournalMode != "console" && c.JournalMode != "postgres" {
		return fmt.Errorf("JOURNAL_MODE must be 'console' or 'postgres', got %q", c.JournalMode)
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
