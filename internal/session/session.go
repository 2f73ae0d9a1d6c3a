// Package session implements the exercise and game protocol. The service is
// stateless: every call carries the full context it needs, and results are
// handed to an append-only Recorder.
package session

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/motionlab/internal/balance"
	"github.com/ayusman/motionlab/internal/catalog"
	"github.com/ayusman/motionlab/internal/extractor"
	"github.com/ayusman/motionlab/internal/movement"
	"github.com/ayusman/motionlab/internal/store"
)

// ErrMissingUser is returned by persistence operations called without a user.
var ErrMissingUser = errors.New("missing user id")

// MsgNoPose is the per-tick feedback when no body is visible.
const MsgNoPose = "No pose detected."

// Defaults applied to incomplete game reports.
const (
	unknownValue   = "unknown"
	ageAppropriate = "yes"
	recentScores   = 5
	noFavorite     = "N/A"
)

// Recorder is an append-only sink for session results.
type Recorder interface {
	AppendProgress(r *store.ProgressRecord) error
	AppendGame(r *store.GameRecord) error
	GamesByUser(userID string) ([]store.GameRecord, error)
}

// Service runs per-frame analysis and records finished sessions.
type Service struct {
	extractor *extractor.Extractor
	recorder  Recorder
	log       logrus.FieldLogger

	rngMu sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithRand sets the random source used for exercise selection.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

// WithClock sets the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service.
func NewService(ext *extractor.Extractor, recorder Recorder, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		extractor: ext,
		recorder:  recorder,
		log:       log.WithField("component", "session"),
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6d6f74696f6e)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BalanceExercise picks a random exercise of the given difficulty.
func (s *Service) BalanceExercise(difficulty string) catalog.Exercise {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return catalog.SelectExercise(catalog.Difficulty(difficulty), s.rng)
}

// ProcessFrame analyzes one balance training tick.
func (s *Service) ProcessFrame(req FrameRequest) FrameResult {
	result := FrameResult{
		Feedback: []string{MsgNoPose},
		Autoend:  req.Timer <= 0,
		Timer:    req.Timer,
	}

	pose := s.extractor.Pose(req.Frame)
	result.ProcessedFrame = pose.ProcessedFrame
	if !pose.Detected() {
		return result
	}

	analysis := balance.Analyze(pose.Pose)
	result.BalanceScore = analysis.Score
	result.Feedback = analysis.Feedback
	result.PoseCorrect = analysis.PoseCorrect()
	result.Landmarks = pose.Pose.List()
	return result
}

// DetectMovement checks a frame against a camera exercise movement.
func (s *Service) DetectMovement(req MovementRequest) MovementResult {
	pose := s.extractor.Pose(req.Frame)
	r := movement.Check(movement.Type(req.Movement), pose.Pose)
	return MovementResult{Detected: r.Detected, Feedback: r.Feedback}
}

// DetectGesture classifies the hand gesture in a frame.
func (s *Service) DetectGesture(req GestureRequest) GestureResult {
	hand := s.extractor.Hands(req.Frame)
	return GestureResult{
		Gesture:        hand.Gesture,
		HandDetected:   hand.Detected(),
		Landmarks:      hand.Landmarks(),
		ProcessedFrame: hand.ProcessedFrame,
	}
}

// ValidateGesture compares the gesture in a frame with the expected one.
func (s *Service) ValidateGesture(req ValidateRequest) ValidateResult {
	hand := s.extractor.Hands(req.Frame)
	return ValidateResult{
		DetectedGesture: hand.Gesture,
		ExpectedGesture: req.ExpectedGesture,
		IsCorrect:       string(hand.Gesture) == req.ExpectedGesture,
		HandDetected:    hand.Detected(),
		ProcessedFrame:  hand.ProcessedFrame,
	}
}

// DetectPose extracts body landmarks and their balance analysis.
func (s *Service) DetectPose(req PoseRequest) PoseResult {
	pose := s.extractor.Pose(req.Frame)
	result := PoseResult{
		PoseDetected:   pose.Detected(),
		ProcessedFrame: pose.ProcessedFrame,
	}
	if pose.Detected() {
		analysis := balance.Analyze(pose.Pose)
		result.PoseLandmarks = pose.Pose.List()
		result.BalanceAnalysis = &analysis
	}
	return result
}

// Evaluate scores a finished balance session.
func (s *Service) Evaluate(duration float64, scores []float64) balance.Evaluation {
	return balance.Evaluate(duration, scores)
}

// SubmitBalanceResult records a finished balance exercise. When per-tick
// scores are supplied the session evaluation is returned as well.
func (s *Service) SubmitBalanceResult(userID string, req BalanceResultRequest) (*balance.Evaluation, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	record := &store.ProgressRecord{
		UserID:       userID,
		Activity:     store.ActivityBalance,
		ExerciseName: req.ExerciseName,
		Duration:     balance.Round(req.Duration, 3),
		Result:       store.FormatStability(math.RoundToEven(req.Stability)),
		Timestamp:    s.now(),
	}
	if err := s.recorder.AppendProgress(record); err != nil {
		return nil, fmt.Errorf("save balance result: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  userID,
		"exercise": req.ExerciseName,
	}).Info("balance result saved")

	if len(req.Scores) == 0 {
		return nil, nil
	}
	eval := balance.Evaluate(req.Duration, req.Scores)
	return &eval, nil
}

// SaveCameraExercise records a finished camera exercise.
func (s *Service) SaveCameraExercise(userID string, req CameraResultRequest) error {
	if userID == "" {
		return ErrMissingUser
	}

	record := &store.ProgressRecord{
		UserID:       userID,
		Activity:     store.ActivityCamera,
		ExerciseName: req.ExerciseName,
		Duration:     balance.Round(req.Duration, 2),
		Result:       store.FormatSuccess(req.Success),
		Timestamp:    s.now(),
	}
	if err := s.recorder.AppendProgress(record); err != nil {
		return fmt.Errorf("save camera exercise: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  userID,
		"exercise": req.ExerciseName,
		"success":  req.Success,
	}).Info("camera exercise saved")
	return nil
}

// SaveGameResults records a finished coordination game. The practiced skills
// come from the catalog entry named by the game type.
func (s *Service) SaveGameResults(userID string, req GameResultRequest) error {
	if userID == "" {
		return ErrMissingUser
	}

	record := &store.GameRecord{
		UserID:          userID,
		GameType:        orDefault(req.GameType, unknownValue),
		Score:           req.Score,
		TotalRounds:     req.TotalRounds,
		Accuracy:        balance.Round(req.Accuracy, 1),
		GameTime:        req.GameTime,
		CorrectAttempts: req.CorrectAttempts,
		TotalAttempts:   req.TotalAttempts,
		Difficulty:      orDefault(req.Difficulty, unknownValue),
		AgeAppropriate:  ageAppropriate,
		Timestamp:       s.now(),
	}
	if game, ok := catalog.GameByName(req.GameType); ok {
		record.SkillsPracticed = strings.Join(game.Skills, ",")
	}

	if err := s.recorder.AppendGame(record); err != nil {
		return fmt.Errorf("save game results: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":   userID,
		"game_type": record.GameType,
		"accuracy":  record.Accuracy,
	}).Info("game results saved")
	return nil
}

// GameStats summarizes a user's coordination game history.
func (s *Service) GameStats(userID string) (GameStats, error) {
	if userID == "" {
		return GameStats{}, ErrMissingUser
	}

	games, err := s.recorder.GamesByUser(userID)
	if err != nil {
		return GameStats{}, fmt.Errorf("load game history: %w", err)
	}
	return summarize(games), nil
}

func summarize(games []store.GameRecord) GameStats {
	stats := GameStats{
		FavoriteGame:  noFavorite,
		GameBreakdown: map[string]int{},
		RecentScores:  []float64{},
	}
	if len(games) == 0 {
		return stats
	}

	var accuracy, played float64
	var order []string
	for _, g := range games {
		accuracy += g.Accuracy
		played += g.GameTime
		if _, seen := stats.GameBreakdown[g.GameType]; !seen {
			order = append(order, g.GameType)
		}
		stats.GameBreakdown[g.GameType]++
	}

	// Ties go to the game played first.
	best := 0
	for _, name := range order {
		if n := stats.GameBreakdown[name]; n > best {
			best = n
			stats.FavoriteGame = name
		}
	}

	start := max(0, len(games)-recentScores)
	for _, g := range games[start:] {
		stats.RecentScores = append(stats.RecentScores, g.Accuracy)
	}

	stats.TotalGames = len(games)
	stats.AverageAccuracy = balance.Round(accuracy/float64(len(games)), 1)
	stats.TotalTimePlayed = math.RoundToEven(played)
	return stats
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
