package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/mselser95/bybit-sniper/pkg/types"
	"go.uber.org/zap"
)

// PostgresJournal implements Journal using PostgreSQL.
type PostgresJournal struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresJournal creates a new PostgreSQL journal.
func NewPostgresJournal(cfg *PostgresConfig) (*PostgresJournal, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-journal-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresJournal{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// RecordOrder stores the final order snapshot in PostgreSQL.
func (p *PostgresJournal) RecordOrder(ctx context.Context, record *types.OrderRecord) error {
	query := `
		INSERT INTO order_journal (
			symbol, order_id, order_link_id, status, side, order_type,
			qty, price, cum_exec_qty, cum_exec_value, time_in_force,
			recorded_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := p.db.ExecContext(ctx, query,
		record.Symbol,
		record.OrderID,
		record.OrderLinkID,
		string(record.Status),
		record.Side,
		record.OrderType,
		record.Qty,
		record.Price,
		record.CumExecQty,
		record.CumExecValue,
		record.TimeInForce,
		record.RecordedAt,
	)

	if err != nil {
		return fmt.Errorf("insert order record: %w", err)
	}

	p.logger.Debug("order-recorded",
		zap.String("order-id", record.OrderID),
		zap.String("status", string(record.Status)))

	return nil
}

// Close closes the database connection.
func (p *PostgresJournal) Close() error {
	p.logger.Info("closing-postgres-journal")
	return p.db.Close()
}
