package session

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/ayusman/motionlab/internal/balance"
	"github.com/ayusman/motionlab/internal/catalog"
	"github.com/ayusman/motionlab/internal/detector"
	"github.com/ayusman/motionlab/internal/extractor"
	"github.com/ayusman/motionlab/internal/gesture"
	"github.com/ayusman/motionlab/internal/logging"
	"github.com/ayusman/motionlab/internal/movement"
	"github.com/ayusman/motionlab/internal/store"
	"github.com/ayusman/motionlab/testdata"
)

// memoryRecorder is an in-memory Recorder.
type memoryRecorder struct {
	mu       sync.Mutex
	progress []store.ProgressRecord
	games    []store.GameRecord
	err      error
}

func (m *memoryRecorder) AppendProgress(r *store.ProgressRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.progress = append(m.progress, *r)
	return nil
}

func (m *memoryRecorder) AppendGame(r *store.GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.games = append(m.games, *r)
	return nil
}

func (m *memoryRecorder) GamesByUser(userID string) ([]store.GameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []store.GameRecord
	for _, g := range m.games {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

var fixedNow = time.Date(2025, 5, 4, 10, 30, 0, 0, time.Local)

func newTestService(t *testing.T) (*Service, *detector.MockEstimator, *memoryRecorder) {
	t.Helper()
	mock := detector.NewMockEstimator()
	rec := &memoryRecorder{}
	ext := extractor.New(mock, extractor.Config{Annotate: false}, logging.Discard())
	svc := NewService(ext, rec, logging.Discard(),
		WithRand(rand.New(rand.NewPCG(7, 7))),
		WithClock(func() time.Time { return fixedNow }),
	)
	return svc, mock, rec
}

func TestBalanceExercise(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		difficulty string
		want       catalog.Difficulty
	}{
		{"easy", catalog.Easy},
		{"medium", catalog.Medium},
		{"hard", catalog.Hard},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				if got := svc.BalanceExercise(tt.difficulty); got.Difficulty != tt.want {
					t.Fatalf("got %s exercise %q, want %s", got.Difficulty, got.Name, tt.want)
				}
			}
		})
	}

	// Difficulty is matched exactly; anything else draws from the whole catalog.
	for _, d := range []string{"impossible", "Hard", ""} {
		t.Run("fallback "+d, func(t *testing.T) {
			seen := map[catalog.Difficulty]bool{}
			for i := 0; i < 50; i++ {
				ex := svc.BalanceExercise(d)
				if ex.Name == "" {
					t.Fatal("expected an exercise")
				}
				seen[ex.Difficulty] = true
			}
			if len(seen) < 2 {
				t.Errorf("difficulty %q should fall back to the full catalog, saw only %v", d, seen)
			}
		})
	}
}

func TestProcessFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}
	frame := testdata.MustFrame(64, 48)

	t.Run("centered pose is correct", func(t *testing.T) {
		svc, mock, _ := newTestService(t)
		mock.SetPose(detector.StandingPoseLandmarks())

		got := svc.ProcessFrame(FrameRequest{Frame: frame, ExerciseName: "Single Leg Stand", Timer: 12})
		if !got.PoseCorrect || got.BalanceScore != 100 {
			t.Errorf("expected correct pose with score 100, got %+v", got)
		}
		if !reflect.DeepEqual(got.Feedback, []string{balance.MsgExcellent}) {
			t.Errorf("feedback = %v", got.Feedback)
		}
		if got.Autoend || got.Timer != 12 {
			t.Errorf("autoend = %v, timer = %v", got.Autoend, got.Timer)
		}
		if len(got.Landmarks) != detector.NumPoseLandmarks {
			t.Errorf("expected %d landmarks, got %d", detector.NumPoseLandmarks, len(got.Landmarks))
		}
	})

	t.Run("off-center pose is not correct", func(t *testing.T) {
		svc, mock, _ := newTestService(t)
		pose := detector.StandingPoseLandmarks()
		pose.Points[detector.LeftHip].X = 0.85
		pose.Points[detector.RightHip].X = 0.75
		mock.SetPose(pose)

		got := svc.ProcessFrame(FrameRequest{Frame: frame, ExerciseName: "x", Timer: 3})
		if got.PoseCorrect || got.BalanceScore != 70 {
			t.Errorf("expected score 70 and incorrect pose, got %+v", got)
		}
	})

	t.Run("no pose", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		got := svc.ProcessFrame(FrameRequest{Frame: frame, ExerciseName: "x", Timer: 0})
		if got.PoseCorrect || got.BalanceScore != 0 {
			t.Errorf("unexpected result %+v", got)
		}
		if !reflect.DeepEqual(got.Feedback, []string{MsgNoPose}) {
			t.Errorf("feedback = %v", got.Feedback)
		}
		if !got.Autoend {
			t.Error("timer 0 should end the session")
		}
	})
}

func TestProcessFrame_InvalidFrame(t *testing.T) {
	svc, mock, _ := newTestService(t)
	mock.SetPose(detector.StandingPoseLandmarks())

	got := svc.ProcessFrame(FrameRequest{Frame: "garbage", ExerciseName: "x", Timer: -1})
	if got.PoseCorrect || got.BalanceScore != 0 || !got.Autoend {
		t.Errorf("unexpected result %+v", got)
	}
	if !reflect.DeepEqual(got.Feedback, []string{MsgNoPose}) {
		t.Errorf("feedback = %v", got.Feedback)
	}
	if mock.Calls() != 0 {
		t.Error("estimator should not be called for an undecodable frame")
	}
}

func TestDetectMovement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}
	frame := testdata.MustFrame(64, 48)

	svc, mock, _ := newTestService(t)
	pose := detector.StandingPoseLandmarks()
	pose.Points[detector.LeftWrist].Y = 0.1
	pose.Points[detector.RightWrist].Y = 0.1
	mock.SetPose(pose)

	got := svc.DetectMovement(MovementRequest{Frame: frame, Movement: string(movement.ArmRaise)})
	if !got.Detected || !reflect.DeepEqual(got.Feedback, []string{"Arms raised correctly!"}) {
		t.Errorf("unexpected result %+v", got)
	}

	got = svc.DetectMovement(MovementRequest{Frame: frame, Movement: "moonwalk"})
	if got.Detected || !reflect.DeepEqual(got.Feedback, []string{movement.MsgUnknown}) {
		t.Errorf("unexpected result for unknown movement %+v", got)
	}

	mock.SetPose(nil)
	got = svc.DetectMovement(MovementRequest{Frame: frame, Movement: string(movement.ArmRaise)})
	if got.Detected || !reflect.DeepEqual(got.Feedback, []string{movement.MsgNoPose}) {
		t.Errorf("unexpected result without pose %+v", got)
	}
}

func TestDetectAndValidateGesture(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}
	frame := testdata.MustFrame(64, 48)

	svc, mock, _ := newTestService(t)
	mock.SetHands([]detector.HandLandmarks{detector.ScissorsLandmarks()})

	got := svc.DetectGesture(GestureRequest{Frame: frame})
	if got.Gesture != gesture.Scissors || !got.HandDetected || len(got.Landmarks) != detector.NumLandmarks {
		t.Errorf("unexpected detection %+v", got)
	}

	v := svc.ValidateGesture(ValidateRequest{Frame: frame, ExpectedGesture: "scissors"})
	if !v.IsCorrect || v.DetectedGesture != gesture.Scissors || v.ExpectedGesture != "scissors" {
		t.Errorf("unexpected validation %+v", v)
	}

	v = svc.ValidateGesture(ValidateRequest{Frame: frame, ExpectedGesture: "rock"})
	if v.IsCorrect {
		t.Error("scissors should not validate as rock")
	}

	mock.SetHands(nil)
	got = svc.DetectGesture(GestureRequest{Frame: frame})
	if got.Gesture != gesture.None || got.HandDetected || got.Landmarks != nil {
		t.Errorf("unexpected detection without hand %+v", got)
	}
}

func TestDetectPose(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}
	frame := testdata.MustFrame(64, 48)

	svc, mock, _ := newTestService(t)

	got := svc.DetectPose(PoseRequest{Frame: frame})
	if got.PoseDetected || got.BalanceAnalysis != nil || got.PoseLandmarks != nil {
		t.Errorf("unexpected result without pose %+v", got)
	}

	mock.SetPose(detector.StandingPoseLandmarks())
	got = svc.DetectPose(PoseRequest{Frame: frame})
	if !got.PoseDetected || got.BalanceAnalysis == nil {
		t.Fatalf("expected pose with analysis, got %+v", got)
	}
	if got.BalanceAnalysis.Score != 100 || got.BalanceAnalysis.CenterOfMass == nil {
		t.Errorf("unexpected analysis %+v", got.BalanceAnalysis)
	}
}

func TestSubmitBalanceResult(t *testing.T) {
	svc, _, rec := newTestService(t)

	eval, err := svc.SubmitBalanceResult("u1", BalanceResultRequest{
		ExerciseName: "Tree Pose Hold",
		Duration:     12.34567,
		Stability:    82.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval != nil {
		t.Error("expected no evaluation without scores")
	}

	if len(rec.progress) != 1 {
		t.Fatalf("expected 1 record, got %d", len(rec.progress))
	}
	want := store.ProgressRecord{
		UserID:       "u1",
		Activity:     store.ActivityBalance,
		ExerciseName: "Tree Pose Hold",
		Duration:     12.346,
		Result:       "82.0",
		Timestamp:    fixedNow,
	}
	if rec.progress[0] != want {
		t.Errorf("record = %+v, want %+v", rec.progress[0], want)
	}

	eval, err = svc.SubmitBalanceResult("u1", BalanceResultRequest{
		ExerciseName: "Tree Pose Hold",
		Duration:     10,
		Stability:    90,
		Scores:       []float64{90, 90},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval == nil || eval.Score != 93 {
		t.Errorf("expected evaluation score 93, got %+v", eval)
	}
}

func TestSaveCameraExercise(t *testing.T) {
	svc, _, rec := newTestService(t)

	if err := svc.SaveCameraExercise("u1", CameraResultRequest{ExerciseName: "Arm Raise", Duration: 5.016, Success: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := rec.progress[0]
	if got.Activity != store.ActivityCamera || got.Duration != 5.02 || got.Result != "True" {
		t.Errorf("unexpected record %+v", got)
	}
}

func TestSaveGameResults(t *testing.T) {
	svc, _, rec := newTestService(t)

	err := svc.SaveGameResults("u1", GameResultRequest{
		GameType:    "Rock Paper Scissors",
		Score:       4,
		TotalRounds: 5,
		Accuracy:    66.666,
		GameTime:    31.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SaveGameResults("u1", GameResultRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	known := rec.games[0]
	if known.SkillsPracticed != "hand_coordination,reaction_time,decision_making" {
		t.Errorf("skills = %q", known.SkillsPracticed)
	}
	if known.Accuracy != 66.7 || known.AgeAppropriate != "yes" || known.Difficulty != "unknown" {
		t.Errorf("unexpected record %+v", known)
	}

	unknown := rec.games[1]
	if unknown.GameType != "unknown" || unknown.SkillsPracticed != "" {
		t.Errorf("unexpected defaults %+v", unknown)
	}
}

func TestPersistence_Errors(t *testing.T) {
	svc, _, rec := newTestService(t)

	t.Run("missing user", func(t *testing.T) {
		if _, err := svc.SubmitBalanceResult("", BalanceResultRequest{}); !errors.Is(err, ErrMissingUser) {
			t.Errorf("expected ErrMissingUser, got %v", err)
		}
		if err := svc.SaveCameraExercise("", CameraResultRequest{}); !errors.Is(err, ErrMissingUser) {
			t.Errorf("expected ErrMissingUser, got %v", err)
		}
		if err := svc.SaveGameResults("", GameResultRequest{}); !errors.Is(err, ErrMissingUser) {
			t.Errorf("expected ErrMissingUser, got %v", err)
		}
		if _, err := svc.GameStats(""); !errors.Is(err, ErrMissingUser) {
			t.Errorf("expected ErrMissingUser, got %v", err)
		}
	})

	t.Run("sink failure is wrapped", func(t *testing.T) {
		rec.err = errors.New("disk full")
		defer func() { rec.err = nil }()

		err := svc.SaveGameResults("u1", GameResultRequest{GameType: "Color Touch"})
		if !errors.Is(err, rec.err) {
			t.Errorf("expected wrapped sink error, got %v", err)
		}
	})
}

func TestGameStats(t *testing.T) {
	svc, _, rec := newTestService(t)

	t.Run("no games", func(t *testing.T) {
		stats, err := svc.GameStats("u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := GameStats{
			FavoriteGame:  "N/A",
			GameBreakdown: map[string]int{},
			RecentScores:  []float64{},
		}
		if !reflect.DeepEqual(stats, want) {
			t.Errorf("stats = %+v, want %+v", stats, want)
		}
	})

	t.Run("history", func(t *testing.T) {
		plays := []struct {
			game     string
			accuracy float64
			time     float64
		}{
			{"Color Touch", 50, 10.2},
			{"Target Pointing", 60, 20.2},
			{"Target Pointing", 70, 30.2},
			{"Color Touch", 80, 40.2},
			{"Mirror Match", 90, 50.2},
			{"Rhythm Clapping", 100, 60.2},
		}
		for _, p := range plays {
			rec.games = append(rec.games, store.GameRecord{UserID: "u2", GameType: p.game, Accuracy: p.accuracy, GameTime: p.time})
		}
		rec.games = append(rec.games, store.GameRecord{UserID: "other", GameType: "Mirror Match", Accuracy: 1})

		stats, err := svc.GameStats("u2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.TotalGames != 6 {
			t.Errorf("total games = %d, want 6", stats.TotalGames)
		}
		if stats.AverageAccuracy != 75 {
			t.Errorf("average accuracy = %v, want 75", stats.AverageAccuracy)
		}
		if stats.TotalTimePlayed != 211 {
			t.Errorf("total time = %v, want 211", stats.TotalTimePlayed)
		}
		if stats.FavoriteGame != "Color Touch" {
			t.Errorf("favorite = %s, want Color Touch (first of the tied games)", stats.FavoriteGame)
		}
		if stats.GameBreakdown["Target Pointing"] != 2 || len(stats.GameBreakdown) != 4 {
			t.Errorf("breakdown = %v", stats.GameBreakdown)
		}
		if !reflect.DeepEqual(stats.RecentScores, []float64{60, 70, 80, 90, 100}) {
			t.Errorf("recent scores = %v", stats.RecentScores)
		}
	})
}
