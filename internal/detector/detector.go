package detector

import "gocv.io/x/gocv"

// Estimator defines the interface for landmark estimation implementations.
//
// An Estimator is owned by the process and shared by all request handlers.
// Implementations must be safe for concurrent use; the underlying model is
// not, so implementations serialize calls internally.
type Estimator interface {
	// ExtractHands analyzes a frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	ExtractHands(frame *gocv.Mat) ([]HandLandmarks, error)

	// ExtractPose analyzes a frame and returns the body landmarks, or nil
	// if no body is detected.
	ExtractPose(frame *gocv.Mat) (*PoseLandmarks, error)

	// Close releases any resources held by the estimator.
	Close() error
}

// Config holds configuration options for landmark estimation.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// ScriptPath overrides the location of mediapipe_service.py.
	ScriptPath string

	// PythonPath overrides the interpreter used to run the service.
	PythonPath string

	// IdleTimeoutSec shuts the service down after this many idle seconds.
	IdleTimeoutSec int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.7,
		MinTrackingConf: 0.5,
		IdleTimeoutSec:  30,
	}
}
