package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Activity identifies the kind of exercise a progress record belongs to.
type Activity string

const (
	ActivityBalance Activity = "balance_training"
	ActivityCamera  Activity = "camera_exercise"
)

// TimestampLayout is the ISO-8601 local time format used in the CSV files.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// ProgressRecord is one finished balance or camera exercise. Result holds the
// stability score for balance training (see FormatStability) and the outcome
// for camera exercises (see FormatSuccess).
type ProgressRecord struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Activity     Activity  `db:"activity"`
	ExerciseName string    `db:"exercise_name"`
	Duration     float64   `db:"duration"`
	Result       string    `db:"result"`
	Timestamp    time.Time `db:"timestamp"`
}

// Validate checks the fields every sink requires.
func (r *ProgressRecord) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidRecord)
	}
	if r.Activity != ActivityBalance && r.Activity != ActivityCamera {
		return fmt.Errorf("%w: unknown activity %q", ErrInvalidRecord, r.Activity)
	}
	return nil
}

// GameRecord is one finished coordination game.
type GameRecord struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	GameType        string    `db:"game_type"`
	Score           int       `db:"score"`
	TotalRounds     int       `db:"total_rounds"`
	Accuracy        float64   `db:"accuracy"`
	GameTime        float64   `db:"game_time"`
	CorrectAttempts int       `db:"correct_attempts"`
	TotalAttempts   int       `db:"total_attempts"`
	Difficulty      string    `db:"difficulty"`
	AgeAppropriate  string    `db:"age_appropriate"`
	SkillsPracticed string    `db:"skills_practiced"`
	Timestamp       time.Time `db:"timestamp"`
}

// Validate checks the fields every sink requires.
func (r *GameRecord) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidRecord)
	}
	if r.GameType == "" {
		return fmt.Errorf("%w: game type is required", ErrInvalidRecord)
	}
	return nil
}

// FormatStability renders a whole-number stability score the way the web
// app's CSV files hold it: "82.0".
func FormatStability(v float64) string {
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(out, ".eEnN") {
		out += ".0"
	}
	return out
}

// FormatSuccess renders a camera exercise outcome as "True" or "False".
func FormatSuccess(ok bool) string {
	if ok {
		return "True"
	}
	return "False"
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}
