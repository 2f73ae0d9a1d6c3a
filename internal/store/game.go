package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GameRepository appends and reads coordination game results.
type GameRepository struct {
	db *sqlx.DB
}

// Games returns the game repository for this store.
func (s *Store) Games() *GameRepository {
	return &GameRepository{db: s.db}
}

// Append inserts a new record. ID and Timestamp are filled in when empty.
func (r *GameRepository) Append(g *GameRecord) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	stamp(&g.Timestamp)

	_, err := r.db.NamedExec(
		`INSERT INTO game_results (id, user_id, game_type, score, total_rounds, accuracy, game_time,
			correct_attempts, total_attempts, difficulty, age_appropriate, skills_practiced, timestamp)
		 VALUES (:id, :user_id, :game_type, :score, :total_rounds, :accuracy, :game_time,
			:correct_attempts, :total_attempts, :difficulty, :age_appropriate, :skills_practiced, :timestamp)`,
		g,
	)
	if err != nil {
		return fmt.Errorf("append game result: %w", err)
	}
	return nil
}

// ListByUser returns a user's game results in the order they were played.
func (r *GameRepository) ListByUser(userID string) ([]GameRecord, error) {
	var records []GameRecord
	err := r.db.Select(&records,
		`SELECT id, user_id, game_type, score, total_rounds, accuracy, game_time,
			correct_attempts, total_attempts, difficulty, age_appropriate, skills_practiced, timestamp
		 FROM game_results WHERE user_id = ? ORDER BY rowid`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list game results: %w", err)
	}
	return records, nil
}
