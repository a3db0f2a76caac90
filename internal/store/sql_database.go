package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/restgen/restgen/internal/config"
	"github.com/restgen/restgen/internal/logger"
)

// DB wraps the sql connection pool together with the dialect selected from
// the configured driver. Repositories build their SQL through the dialect so
// the same code serves PostgreSQL deployments and sqlite dev setups.
type DB struct {
	*sql.DB
	dialect dialect
	logger  *logger.Logger
}

// NewConnect opens, configures, and pings a database connection for the
// configured driver ("pgx" or "sqlite3").
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		log.Err(err).Str("driver", cfg.Driver).Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("driver", cfg.Driver).Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("driver", cfg.Driver).Msg("connected to database successfully")

	return &DB{
		DB:      conn,
		dialect: d,
		logger:  log,
	}, nil
}

// postgresError extracts the PostgreSQL error code from err, or "" when err
// did not originate from the postgres driver.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
