package storage

import (
	"database/sql"
	"fmt"
)

// PostgresKV stores blobs in a single key/value table. It serves deployments
// where the data directory of FileKV is not durable enough.
type PostgresKV struct {
	db *sql.DB
}

// NewPostgresKV ensures the backing table exists and returns a store over db.
func NewPostgresKV(db *sql.DB) (*PostgresKV, error) {
	query := `
		CREATE TABLE IF NOT EXISTS kv_blobs (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create kv_blobs table: %w", err)
	}
	return &PostgresKV{db: db}, nil
}

// Load reads the blob stored under key, or ErrNoData if none exists.
func (p *PostgresKV) Load(key string) ([]byte, error) {
	var data []byte
	query := `SELECT data FROM kv_blobs WHERE key = $1`
	err := p.db.QueryRow(query, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return data, nil
}

// Save replaces the blob stored under key.
func (p *PostgresKV) Save(key string, data []byte) error {
	query := `
		INSERT INTO kv_blobs (key, data, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET data = $2, updated_at = CURRENT_TIMESTAMP`
	if _, err := p.db.Exec(query, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
