package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// CSV file names and headers. The layout matches the files the web app
// writes, so either side can append to the other's files.
const (
	ProgressFile = "progress.csv"
	GamesFile    = "games.csv"
)

var (
	gamesHeader = []string{
		"user_id", "game_type", "score", "total_rounds", "accuracy", "game_time",
		"correct_attempts", "total_attempts", "difficulty", "age_appropriate",
		"skills_practiced", "timestamp",
	}
)

// CSVSink appends results to flat CSV files in a directory. The header is
// written once, when a file is created.
type CSVSink struct {
	dir string
	mu  sync.Mutex
}

// NewCSVSink creates dir if needed and returns a sink writing into it.
func NewCSVSink(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &CSVSink{dir: dir}, nil
}

// Close is a no-op; files are opened per append.
func (c *CSVSink) Close() error {
	return nil
}

// AppendProgress writes one progress row.
func (c *CSVSink) AppendProgress(r *ProgressRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	stamp(&r.Timestamp)

	row := []string{
		r.UserID,
		string(r.Activity),
		r.ExerciseName,
		formatFloat(r.Duration),
		r.Result,
		r.Timestamp.Format(TimestampLayout),
	}
	return c.append(ProgressFile, progressHeader(r.Activity), row)
}

// progressHeader is the header of a new progress file. Its fifth column is
// named after the activity of the first row: stability_score for balance
// training, success for camera exercises. Later rows keep the column position
// whatever their activity.
func progressHeader(a Activity) []string {
	result := "stability_score"
	if a == ActivityCamera {
		result = "success"
	}
	return []string{"user_id", "activity", "exercise_name", "duration", result, "timestamp"}
}

// AppendGame writes one game row.
func (c *CSVSink) AppendGame(r *GameRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	stamp(&r.Timestamp)

	row := []string{
		r.UserID,
		r.GameType,
		strconv.Itoa(r.Score),
		strconv.Itoa(r.TotalRounds),
		formatFloat(r.Accuracy),
		formatFloat(r.GameTime),
		strconv.Itoa(r.CorrectAttempts),
		strconv.Itoa(r.TotalAttempts),
		r.Difficulty,
		r.AgeAppropriate,
		r.SkillsPracticed,
		r.Timestamp.Format(TimestampLayout),
	}
	return c.append(GamesFile, gamesHeader, row)
}

// GamesByUser reads back a user's game rows in file order. A missing file
// means no games.
func (c *CSVSink) GamesByUser(userID string) ([]GameRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(filepath.Join(c.dir, GamesFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open games file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(gamesHeader)

	var records []GameRecord
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read games file: %w", err)
		}
		if line == 1 && row[0] == gamesHeader[0] {
			continue
		}
		if row[0] != userID {
			continue
		}

		g, err := parseGameRow(row)
		if err != nil {
			return nil, fmt.Errorf("games file line %d: %w", line, err)
		}
		records = append(records, g)
	}

	return records, nil
}

func (c *CSVSink) append(name string, header, row []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := filepath.Join(c.dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write %s header: %w", name, err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return nil
}

func parseGameRow(row []string) (GameRecord, error) {
	var (
		g   GameRecord
		err error
	)
	g.UserID = row[0]
	g.GameType = row[1]
	if g.Score, err = parseInt(row[2]); err != nil {
		return g, fmt.Errorf("score: %w", err)
	}
	if g.TotalRounds, err = parseInt(row[3]); err != nil {
		return g, fmt.Errorf("total_rounds: %w", err)
	}
	if g.Accuracy, err = strconv.ParseFloat(row[4], 64); err != nil {
		return g, fmt.Errorf("accuracy: %w", err)
	}
	if g.GameTime, err = strconv.ParseFloat(row[5], 64); err != nil {
		return g, fmt.Errorf("game_time: %w", err)
	}
	if g.CorrectAttempts, err = parseInt(row[6]); err != nil {
		return g, fmt.Errorf("correct_attempts: %w", err)
	}
	if g.TotalAttempts, err = parseInt(row[7]); err != nil {
		return g, fmt.Errorf("total_attempts: %w", err)
	}
	g.Difficulty = row[8]
	g.AgeAppropriate = row[9]
	g.SkillsPracticed = row[10]
	if g.Timestamp, err = time.ParseInLocation(TimestampLayout, row[11], time.Local); err != nil {
		return g, fmt.Errorf("timestamp: %w", err)
	}
	return g, nil
}

// parseInt accepts integral floats ("5.0") written by other producers.
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
