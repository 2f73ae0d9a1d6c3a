// Package store persists session results. Both sinks are append-only: the
// SQLite Store and the CSVSink used for flat-file deployments.
package store

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrInvalidRecord is returned when a record is missing required fields.
var ErrInvalidRecord = errors.New("invalid record")

// Store is the SQLite result sink.
type Store struct {
	db   *sqlx.DB
	path string
}

// New opens the database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Serialize writers; SQLite allows one at a time anyway.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// AppendProgress records an exercise result.
func (s *Store) AppendProgress(r *ProgressRecord) error {
	return s.Progress().Append(r)
}

// AppendGame records a game result.
func (s *Store) AppendGame(r *GameRecord) error {
	return s.Games().Append(r)
}

// GamesByUser returns a user's game results, oldest first.
func (s *Store) GamesByUser(userID string) ([]GameRecord, error) {
	return s.Games().ListByUser(userID)
}
