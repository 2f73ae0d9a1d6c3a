package extractor

import (
	"errors"
	"testing"

	"github.com/ayusman/motionlab/internal/detector"
	"github.com/ayusman/motionlab/internal/gesture"
	"github.com/ayusman/motionlab/internal/logging"
	"github.com/ayusman/motionlab/testdata"
)

func newTestExtractor(t *testing.T, annotate bool) (*Extractor, *detector.MockEstimator) {
	t.Helper()
	mock := detector.NewMockEstimator()
	config := DefaultConfig()
	config.Annotate = annotate
	return New(mock, config, logging.Discard()), mock
}

func TestHands(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	tests := []struct {
		name  string
		hands []detector.HandLandmarks
		want  gesture.Gesture
		found bool
	}{
		{"no hands", nil, gesture.None, false},
		{"thumbs up", []detector.HandLandmarks{detector.ThumbsUpLandmarks()}, gesture.ThumbsUp, true},
		{"first hand wins", []detector.HandLandmarks{detector.FistLandmarks(), detector.OpenPalmLandmarks()}, gesture.Rock, true},
	}

	frame := testdata.MustFrame(64, 48)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, mock := newTestExtractor(t, true)
			mock.SetHands(tt.hands)

			result := ext.Hands(frame)
			if result.Detected() != tt.found {
				t.Errorf("Detected() = %v, want %v", result.Detected(), tt.found)
			}
			if result.Gesture != tt.want {
				t.Errorf("gesture = %s, want %s", result.Gesture, tt.want)
			}
			if tt.found && len(result.Landmarks()) != detector.NumLandmarks {
				t.Errorf("expected %d landmarks, got %d", detector.NumLandmarks, len(result.Landmarks()))
			}
			if !tt.found && result.Landmarks() != nil {
				t.Error("expected nil landmarks without a hand")
			}
			if result.ProcessedFrame == "" {
				t.Error("expected an annotated frame")
			}
		})
	}
}

func TestHands_DataURL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	ext, mock := newTestExtractor(t, false)
	mock.SetHands([]detector.HandLandmarks{detector.OpenPalmLandmarks()})

	result := ext.Hands(testdata.DataURL(testdata.MustFrame(64, 48)))
	if result.Gesture != gesture.Paper {
		t.Errorf("gesture = %s, want paper", result.Gesture)
	}
	if result.ProcessedFrame != "" {
		t.Error("expected no processed frame when annotation is off")
	}
}

func TestHands_FailSoft(t *testing.T) {
	t.Run("undecodable frame", func(t *testing.T) {
		ext, mock := newTestExtractor(t, true)
		mock.SetHands([]detector.HandLandmarks{detector.OpenPalmLandmarks()})

		result := ext.Hands("not-a-frame")
		if result.Detected() || result.Gesture != gesture.None {
			t.Errorf("expected no detection, got %+v", result)
		}
		if mock.Calls() != 0 {
			t.Error("estimator should not run on an undecodable frame")
		}
	})

	t.Run("estimator error", func(t *testing.T) {
		if testing.Short() {
			t.Skip("skipping test that requires GoCV Mat creation")
		}

		ext, mock := newTestExtractor(t, true)
		mock.SetError(errors.New("side-car crashed"))

		result := ext.Hands(testdata.MustFrame(64, 48))
		if result.Detected() || result.Gesture != gesture.None {
			t.Errorf("expected no detection, got %+v", result)
		}
	})

	t.Run("nil mat", func(t *testing.T) {
		ext, _ := newTestExtractor(t, true)
		if result := ext.HandsFromMat(nil); result.Detected() {
			t.Error("expected no detection for nil mat")
		}
	})
}

func TestPose(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := testdata.MustFrame(64, 48)

	t.Run("pose found", func(t *testing.T) {
		ext, mock := newTestExtractor(t, true)
		mock.SetPose(detector.StandingPoseLandmarks())

		result := ext.Pose(frame)
		if !result.Detected() {
			t.Fatal("expected pose")
		}
		if result.Pose.At(detector.Nose).Y != 0.15 {
			t.Errorf("unexpected nose: %+v", result.Pose.At(detector.Nose))
		}
		if result.ProcessedFrame == "" {
			t.Error("expected an annotated frame")
		}
	})

	t.Run("no pose", func(t *testing.T) {
		ext, _ := newTestExtractor(t, true)

		result := ext.Pose(frame)
		if result.Detected() {
			t.Error("expected no pose")
		}
		if result.ProcessedFrame == "" {
			t.Error("expected the frame to be returned even without landmarks")
		}
	})

	t.Run("estimator error", func(t *testing.T) {
		ext, mock := newTestExtractor(t, true)
		mock.SetPose(detector.StandingPoseLandmarks())
		mock.SetError(errors.New("timeout"))

		if result := ext.Pose(frame); result.Detected() {
			t.Error("expected no pose on estimator error")
		}
	})

	t.Run("undecodable frame", func(t *testing.T) {
		ext, _ := newTestExtractor(t, true)
		if result := ext.Pose("%%%"); result.Detected() || result.ProcessedFrame != "" {
			t.Errorf("expected empty result, got %+v", result)
		}
	})
}
