package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// registers the pure-Go "sqlite" database/sql driver
	_ "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/posts-api/internal/config"
)

const (
	connectTimeout = 5 * time.Second
	sqliteDriver   = "sqlite"
)

// Connect opens the configured database through sqlx and fails fast if it is
// unreachable.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var db *sqlx.DB
	switch cfg.Driver {
	case config.DriverPostgres:
		// Parse DSN → pgx config struct
		pgCfg, err := pgx.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
		}
		pgCfg.ConnectTimeout = connectTimeout
		db = sqlx.NewDb(stdlib.OpenDB(*pgCfg), "pgx")
	case config.DriverSQLite:
		sqlDB, err := sql.Open(sqliteDriver, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("db: failed to open sqlite: %w", err)
		}
		db = sqlx.NewDb(sqlDB, sqliteDriver)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.Driver)
	}

	applyPool(db.DB, cfg)

	if err := healthCheck(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Ping is the readiness probe used by /healthz.
func Ping(ctx context.Context, sqlDB *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func healthCheck(ctx context.Context, sqlDB *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("db: failed to connect: %w", err)
	}
	var one int
	if err := sqlDB.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("db: health check failed: %w", err)
	}
	return nil
}

func applyPool(sqlDB *sql.DB, cfg config.DatabaseConfig) {
	pool := cfg.Pool
	if cfg.Driver == config.DriverSQLite {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
}
