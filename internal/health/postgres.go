package health

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresChecker probes PostgreSQL over a dedicated single-connection pool
type PostgresChecker struct {
	db *sql.DB
}

// NewPostgresChecker opens a probe connection to dsn
func NewPostgresChecker(ctx context.Context, dsn string) (*PostgresChecker, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres probe: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &PostgresChecker{db: db}, nil
}

// HealthCheck runs a trivial query against the database
func (p *PostgresChecker) HealthCheck(ctx context.Context) error {
	var one int
	if err := p.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("postgres probe: %w", err)
	}
	return nil
}

// Close closes the probe connection
func (p *PostgresChecker) Close() error {
	return p.db.Close()
}
