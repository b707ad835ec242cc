package db

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var schema = []string{`
	CREATE TABLE IF NOT EXISTS games (
		id         TEXT PRIMARY KEY,
		player_x   TEXT NOT NULL,
		player_o   TEXT NOT NULL,
		moves      TEXT NOT NULL,
		board      TEXT NOT NULL,
		result     TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_games_created_at ON games (created_at)`,
}

// Connect opens the SQLite database at dbPath and makes sure the schema exists.
func Connect(ctx context.Context, dbPath string) (*sqlx.DB, error) {
	pool, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	// SQLite allows a single writer, and every connection to :memory: is a new database.
	pool.SetMaxOpenConns(1)

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database %s: %w", dbPath, err)
	}

	if err := InitializeDB(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "Connected to game ledger", "db.path", dbPath)
	return pool, nil
}

// InitializeDB creates the tables if they do not exist.
func InitializeDB(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
