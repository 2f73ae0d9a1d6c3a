// Package balance scores postural balance from body landmarks and evaluates
// completed balance sessions.
package balance

import (
	"math"

	"github.com/ayusman/motionlab/internal/detector"
)

// Scoring thresholds.
const (
	PerfectScore = 100

	CenterMin           = 0.3
	CenterMax           = 0.7
	OffCenterPenalty    = 30
	ShoulderTolerance   = 0.05
	ShoulderTiltPenalty = 20

	ExcellentThreshold = 85
	GoodThreshold      = 70
)

// Feedback messages.
const (
	MsgNoPose        = "No pose detected"
	MsgAnalysisError = "Analysis error"
	MsgStayCentered  = "Try to stay more centered."
	MsgLevelShoulder = "Keep your shoulders level."
	MsgExcellent     = "Excellent balance!"
	MsgGood          = "Good stability!"
	MsgHoldSteady    = "Keep holding steady."
)

// Point is a normalized 2D position in the frame.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Analysis is the balance assessment of a single frame.
type Analysis struct {
	Score        int      `json:"balance_score"`
	CenterOfMass *Point   `json:"center_of_mass,omitempty"`
	Feedback     []string `json:"feedback"`
}

// PoseCorrect reports whether the frame counts as a correctly held pose.
func (a Analysis) PoseCorrect() bool {
	return a.Score > GoodThreshold
}

// Analyze scores the balance of a body pose.
//
// The center of mass is the midpoint of the hips. Starting from 100, an
// off-center hip midpoint costs 30 and tilted shoulders cost 20; both checks
// are independent and may apply together.
func Analyze(pose *detector.PoseLandmarks) (a Analysis) {
	if pose == nil {
		return Analysis{Score: 0, Feedback: []string{MsgNoPose}}
	}

	defer func() {
		if recover() != nil {
			a = Analysis{Score: 0, Feedback: []string{MsgAnalysisError}}
		}
	}()

	leftHip, rightHip := pose.At(detector.LeftHip), pose.At(detector.RightHip)
	leftShoulder, rightShoulder := pose.At(detector.LeftShoulder), pose.At(detector.RightShoulder)

	center := Point{
		X: (leftHip.X + rightHip.X) / 2,
		Y: (leftHip.Y + rightHip.Y) / 2,
	}
	shoulderLevel := math.Abs(leftShoulder.Y - rightShoulder.Y)

	score := PerfectScore
	var feedback []string

	if center.X < CenterMin || center.X > CenterMax {
		score -= OffCenterPenalty
		feedback = append(feedback, MsgStayCentered)
	}
	if shoulderLevel > ShoulderTolerance {
		score -= ShoulderTiltPenalty
		feedback = append(feedback, MsgLevelShoulder)
	}

	if score < 0 {
		score = 0
	}

	if len(feedback) == 0 {
		switch {
		case score > ExcellentThreshold:
			feedback = append(feedback, MsgExcellent)
		case score > GoodThreshold:
			feedback = append(feedback, MsgGood)
		default:
			feedback = append(feedback, MsgHoldSteady)
		}
	}

	return Analysis{
		Score:        score,
		CenterOfMass: &center,
		Feedback:     feedback,
	}
}
