package names

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresDirectory resolves index names from the index_names table.
type PostgresDirectory struct {
	db *sql.DB
}

// NewPostgresDirectory creates a directory over an open connection pool.
func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

// Resolve returns the display name for symbol, or ErrNotFound.
func (d *PostgresDirectory) Resolve(ctx context.Context, symbol string) (string, error) {
	var name string
	err := d.db.QueryRowContext(ctx,
		`SELECT name FROM index_names WHERE symbol = $1`, symbol).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query index name: %w", err)
	}
	return name, nil
}
