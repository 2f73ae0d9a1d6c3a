package balance

import (
	"reflect"
	"testing"

	"github.com/ayusman/motionlab/internal/detector"
)

// poseWith returns the standing fixture with the hip midpoint moved to
// centerX and the left shoulder raised by tilt.
func poseWith(centerX, tilt float64) *detector.PoseLandmarks {
	pose := detector.StandingPoseLandmarks()
	pose.Points[detector.LeftHip].X = centerX + 0.05
	pose.Points[detector.RightHip].X = centerX - 0.05
	pose.Points[detector.LeftShoulder].Y = pose.Points[detector.RightShoulder].Y - tilt
	return pose
}

// hipsAt places both hips at x.
func hipsAt(x float64) *detector.PoseLandmarks {
	pose := detector.StandingPoseLandmarks()
	pose.Points[detector.LeftHip].X = x
	pose.Points[detector.RightHip].X = x
	return pose
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		pose     *detector.PoseLandmarks
		score    int
		feedback []string
	}{
		{
			name:     "centered and level",
			pose:     detector.StandingPoseLandmarks(),
			score:    100,
			feedback: []string{MsgExcellent},
		},
		{
			name:     "off center to the left",
			pose:     poseWith(0.2, 0),
			score:    70,
			feedback: []string{MsgStayCentered},
		},
		{
			name:     "off center to the right",
			pose:     poseWith(0.8, 0),
			score:    70,
			feedback: []string{MsgStayCentered},
		},
		{
			name:     "shoulders tilted",
			pose:     poseWith(0.5, 0.1),
			score:    80,
			feedback: []string{MsgLevelShoulder},
		},
		{
			name:     "both deductions compound",
			pose:     poseWith(0.9, 0.2),
			score:    50,
			feedback: []string{MsgStayCentered, MsgLevelShoulder},
		},
		{
			name:     "lower band edge is inside",
			pose:     hipsAt(0.3),
			score:    100,
			feedback: []string{MsgExcellent},
		},
		{
			name:     "upper band edge is inside",
			pose:     hipsAt(0.7),
			score:    100,
			feedback: []string{MsgExcellent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.pose)
			if got.Score != tt.score {
				t.Errorf("score = %d, want %d", got.Score, tt.score)
			}
			if !reflect.DeepEqual(got.Feedback, tt.feedback) {
				t.Errorf("feedback = %v, want %v", got.Feedback, tt.feedback)
			}
			if got.CenterOfMass == nil {
				t.Error("expected center of mass to be set")
			}
		})
	}
}

func TestAnalyze_NoPose(t *testing.T) {
	got := Analyze(nil)

	if got.Score != 0 {
		t.Errorf("score = %d, want 0", got.Score)
	}
	if !reflect.DeepEqual(got.Feedback, []string{MsgNoPose}) {
		t.Errorf("feedback = %v, want [%s]", got.Feedback, MsgNoPose)
	}
	if got.CenterOfMass != nil {
		t.Error("expected no center of mass without a pose")
	}
	if got.PoseCorrect() {
		t.Error("expected pose to be incorrect without a pose")
	}
}

func TestAnalyze_CenterOfMass(t *testing.T) {
	pose := detector.StandingPoseLandmarks()
	got := Analyze(pose)

	if got.CenterOfMass.X != 0.5 {
		t.Errorf("center x = %f, want 0.5", got.CenterOfMass.X)
	}
	if got.CenterOfMass.Y != 0.55 {
		t.Errorf("center y = %f, want 0.55", got.CenterOfMass.Y)
	}
}

func TestAnalyze_Monotonic(t *testing.T) {
	prev := PerfectScore
	for _, x := range []float64{0.5, 0.4, 0.3, 0.25, 0.1, 0.0} {
		got := Analyze(poseWith(x, 0)).Score
		if got > prev {
			t.Errorf("score rose from %d to %d as center moved to %f", prev, got, x)
		}
		if got < 0 {
			t.Errorf("score went negative at center %f", x)
		}
		prev = got
	}

	prev = PerfectScore
	for _, tilt := range []float64{0, 0.02, 0.05, 0.06, 0.2, 0.5} {
		got := Analyze(poseWith(0.5, tilt)).Score
		if got > prev {
			t.Errorf("score rose from %d to %d as tilt grew to %f", prev, got, tilt)
		}
		prev = got
	}
}

func TestAnalysis_PoseCorrect(t *testing.T) {
	tests := []struct {
		score int
		want  bool
	}{
		{100, true},
		{80, true},
		{71, true},
		{70, false},
		{50, false},
	}

	for _, tt := range tests {
		if got := (Analysis{Score: tt.score}).PoseCorrect(); got != tt.want {
			t.Errorf("PoseCorrect() with score %d = %v, want %v", tt.score, got, tt.want)
		}
	}
}
