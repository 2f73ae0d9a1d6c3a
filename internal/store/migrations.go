package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Progress table - balance training and camera exercise results
		`CREATE TABLE IF NOT EXISTS progress (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			activity TEXT NOT NULL CHECK(activity IN ('balance_training', 'camera_exercise')),
			exercise_name TEXT NOT NULL,
			duration REAL NOT NULL,
			result TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)`,

		// Game results table - one row per finished coordination game
		`CREATE TABLE IF NOT EXISTS game_results (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			game_type TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			total_rounds INTEGER NOT NULL DEFAULT 0,
			accuracy REAL NOT NULL DEFAULT 0,
			game_time REAL NOT NULL DEFAULT 0,
			correct_attempts INTEGER NOT NULL DEFAULT 0,
			total_attempts INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL,
			age_appropriate TEXT NOT NULL,
			skills_practiced TEXT NOT NULL DEFAULT '',
			timestamp DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_progress_user_id ON progress(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_game_results_user_id ON game_results(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
