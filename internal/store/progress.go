package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ProgressRepository appends and reads exercise results.
type ProgressRepository struct {
	db *sqlx.DB
}

// Progress returns the progress repository for this store.
func (s *Store) Progress() *ProgressRepository {
	return &ProgressRepository{db: s.db}
}

// Append inserts a new record. ID and Timestamp are filled in when empty.
func (r *ProgressRepository) Append(p *ProgressRecord) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	stamp(&p.Timestamp)

	_, err := r.db.NamedExec(
		`INSERT INTO progress (id, user_id, activity, exercise_name, duration, result, timestamp)
		 VALUES (:id, :user_id, :activity, :exercise_name, :duration, :result, :timestamp)`,
		p,
	)
	if err != nil {
		return fmt.Errorf("append progress: %w", err)
	}
	return nil
}

// ListByUser returns a user's records, oldest first.
func (r *ProgressRepository) ListByUser(userID string) ([]ProgressRecord, error) {
	var records []ProgressRecord
	err := r.db.Select(&records,
		`SELECT id, user_id, activity, exercise_name, duration, result, timestamp
		 FROM progress WHERE user_id = ? ORDER BY rowid`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return records, nil
}
