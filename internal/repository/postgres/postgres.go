// Package postgres implements the storage contract on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"bloodbridge-backend/internal/repository"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// HealthCheck runs a trivial query against the pool so a dead
// connection string surfaces as an error rather than a panic.
func (s *Store) HealthCheck(ctx context.Context) error {
	var one int
	return s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

func (s *Store) Close() error {
	return s.db.Close()
}

var _ repository.Store = (*Store)(nil)
