package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blog-articles-api/internal/config"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// PostgreSQL error code for foreign_key_violation
const foreignKeyViolation = "23503"

// DB wraps the sql.DB connection with additional functionality
type DB struct {
	*sql.DB
	log zerolog.Logger
}

// Open opens a single-connection handle for one invocation and verifies it.
// The caller owns the handle and must Close it.
func Open(ctx context.Context, cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// One invocation, one connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx := ctx
	if cfg.PingTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()
	}

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapper := Wrap(db, log)
	wrapper.log.Debug().Msg("Database connection established")

	return wrapper, nil
}

// Wrap adapts an already opened *sql.DB
func Wrap(db *sql.DB, log zerolog.Logger) *DB {
	return &DB{
		DB:  db,
		log: log.With().Str("component", "database").Logger(),
	}
}

// Close releases the connection
func (db *DB) Close() error {
	if err := db.DB.Close(); err != nil {
		db.log.Warn().Err(err).Msg("Failed to close database connection")
		return err
	}
	db.log.Debug().Msg("Database connection closed")
	return nil
}

// WithTx runs fn inside a transaction and commits when it returns nil.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		if IsForeignKeyViolation(err) {
			db.log.Warn().Err(err).Msg("Write references a missing row")
		}
		return err
	}

	return tx.Commit()
}

// HealthCheck verifies the database connection is healthy
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// IsForeignKeyViolation reports whether err is a PostgreSQL FK violation
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == foreignKeyViolation
	}
	return false
}
