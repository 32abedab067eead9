// Package storage provides Postgres access for campus data.
// All queries are parameterized; user input never reaches SQL text.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Postgres driver for database/sql

	"github.com/guni-dev/guni-chatbot-go/internal/config"
)

// DB wraps the Postgres connection pool
type DB struct {
	conn *sqlx.DB
}

// New opens a connection pool against the configured Postgres database
// and verifies it with a ping.
func New(cfg *config.Config) (*DB, error) {
	conn, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.DBMaxOpenConns)
	conn.SetMaxIdleConns(cfg.DBMaxIdleConns)
	conn.SetConnMaxLifetime(config.DatabaseConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn}, nil
}

// NewFromConn wraps an existing connection. Used by tests with sqlmock.
func NewFromConn(conn *sqlx.DB) *DB {
	return &DB{conn: conn}
}

// Ready checks that the database is reachable. Used by the readiness probe.
func (db *DB) Ready(ctx context.Context) error {
	var one int
	if err := db.conn.GetContext(ctx, &one, "SELECT 1"); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	return nil
}

// Conn returns the underlying *sqlx.DB connection
func (db *DB) Conn() *sqlx.DB {
	return db.conn
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
