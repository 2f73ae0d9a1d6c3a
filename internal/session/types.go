package session

import (
	"github.com/ayusman/motionlab/internal/balance"
	"github.com/ayusman/motionlab/internal/detector"
	"github.com/ayusman/motionlab/internal/gesture"
)

// FrameRequest is one balance training tick.
type FrameRequest struct {
	Frame        string  `json:"frame" validate:"required"`
	ExerciseName string  `json:"exercise_name" validate:"required"`
	Timer        float64 `json:"timer"`
}

// FrameResult is the analysis of a balance training tick.
type FrameResult struct {
	PoseCorrect    bool                    `json:"pose_correct"`
	BalanceScore   int                     `json:"balance_score"`
	Feedback       []string                `json:"feedback"`
	Autoend        bool                    `json:"autoend"`
	Timer          float64                 `json:"timer"`
	Landmarks      []detector.PoseLandmark `json:"landmarks"`
	ProcessedFrame string                  `json:"processed_frame,omitempty"`
}

// MovementRequest asks whether a frame shows a camera exercise movement.
type MovementRequest struct {
	Frame    string `json:"frame" validate:"required"`
	Movement string `json:"movement" validate:"required"`
}

// MovementResult is the outcome of a movement check.
type MovementResult struct {
	Detected bool     `json:"detected"`
	Feedback []string `json:"feedback"`
}

// GestureRequest carries a frame for hand gesture detection.
type GestureRequest struct {
	Frame string `json:"frame" validate:"required"`
}

// GestureResult is the outcome of hand gesture detection.
type GestureResult struct {
	Gesture        gesture.Gesture    `json:"gesture"`
	HandDetected   bool               `json:"hand_detected"`
	Landmarks      []detector.Point3D `json:"landmarks"`
	ProcessedFrame string             `json:"processed_frame,omitempty"`
}

// ValidateRequest checks a frame against the gesture a game round expects.
type ValidateRequest struct {
	Frame           string `json:"frame" validate:"required"`
	ExpectedGesture string `json:"expected_gesture"`
}

// ValidateResult compares the detected gesture with the expected one.
type ValidateResult struct {
	DetectedGesture gesture.Gesture `json:"detected_gesture"`
	ExpectedGesture string          `json:"expected_gesture"`
	IsCorrect       bool            `json:"is_correct"`
	HandDetected    bool            `json:"hand_detected"`
	ProcessedFrame  string          `json:"processed_frame,omitempty"`
}

// PoseRequest carries a frame for body pose detection.
type PoseRequest struct {
	Frame string `json:"frame" validate:"required"`
}

// PoseResult is the outcome of body pose detection.
type PoseResult struct {
	PoseDetected    bool                    `json:"pose_detected"`
	PoseLandmarks   []detector.PoseLandmark `json:"pose_landmarks"`
	BalanceAnalysis *balance.Analysis       `json:"balance_analysis"`
	ProcessedFrame  string                  `json:"processed_frame,omitempty"`
}

// BalanceResultRequest reports a finished balance exercise. Scores, when
// present, are the per-tick balance scores used for the session evaluation.
type BalanceResultRequest struct {
	ExerciseName string    `json:"exercise_name"`
	Duration     float64   `json:"duration" validate:"gte=0"`
	Stability    float64   `json:"stability" validate:"gte=0,lte=100"`
	Scores       []float64 `json:"scores,omitempty" validate:"omitempty,dive,gte=0,lte=100"`
}

// CameraResultRequest reports a finished camera exercise.
type CameraResultRequest struct {
	ExerciseName string  `json:"exercise_name"`
	Duration     float64 `json:"duration" validate:"gte=0"`
	Success      bool    `json:"success"`
}

// GameResultRequest reports a finished coordination game.
type GameResultRequest struct {
	GameType        string  `json:"game_type"`
	Score           int     `json:"score"`
	TotalRounds     int     `json:"total_rounds" validate:"gte=0"`
	Accuracy        float64 `json:"accuracy" validate:"gte=0,lte=100"`
	GameTime        float64 `json:"game_time" validate:"gte=0"`
	CorrectAttempts int     `json:"correct_attempts" validate:"gte=0"`
	TotalAttempts   int     `json:"total_attempts" validate:"gte=0"`
	Difficulty      string  `json:"difficulty"`
}

// GameStats summarizes a user's coordination game history.
type GameStats struct {
	TotalGames      int            `json:"total_games"`
	AverageAccuracy float64        `json:"average_accuracy"`
	TotalTimePlayed float64        `json:"total_time_played"`
	FavoriteGame    string         `json:"favorite_game"`
	GameBreakdown   map[string]int `json:"game_breakdown"`
	RecentScores    []float64      `json:"recent_scores"`
}
