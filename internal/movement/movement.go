// Package movement detects camera-exercise movements from a single body pose.
//
// Each movement type owns one pure predicate over fixed landmark pairs and a
// pair of feedback messages: one for success and one corrective hint.
package movement

import (
	"math"

	"github.com/ayusman/motionlab/internal/detector"
)

// Type identifies a camera-exercise movement.
type Type string

const (
	ArmRaise     Type = "arm_raise"
	SideStep     Type = "side_step"
	MarchInPlace Type = "march_in_place"
	SquatHold    Type = "squat_hold"
	TorsoTwist   Type = "torso_twist"
	JumpingJacks Type = "jumping_jacks"
	HeelWalk     Type = "heel_walk"
	BalanceReach Type = "balance_reach"
)

// Feedback for frames that cannot be judged.
const (
	MsgNoPose  = "No pose detected."
	MsgUnknown = "Unknown movement type."
)

// Predicate reports whether a pose shows the movement.
type Predicate func(p *detector.PoseLandmarks) bool

// Rule binds a predicate to its feedback pair.
type Rule struct {
	Detect     Predicate
	Success    string
	Corrective string
}

// Result is the outcome of checking one frame.
type Result struct {
	Detected bool     `json:"detected"`
	Feedback []string `json:"feedback"`
}

var rules = map[Type]Rule{
	ArmRaise:     {armRaise, "Arms raised correctly!", "Raise both arms above your head."},
	SideStep:     {sideStep, "Good side step!", "Step wider to the side."},
	MarchInPlace: {marchInPlace, "Great knee lift!", "Lift your knees higher."},
	SquatHold:    {squatHold, "Squat position held!", "Lower your hips more."},
	TorsoTwist:   {torsoTwist, "Good torso twist!", "Twist your torso more."},
	JumpingJacks: {jumpingJacks, "Jumping jack detected!", "Jump higher and spread your feet."},
	HeelWalk:     {heelWalk, "Heel walk detected!", "Lift your toes up for heel walk."},
	BalanceReach: {balanceReach, "Balance reach detected!", "Reach forward and balance on one foot."},
}

// Types lists every known movement type in catalog order.
var Types = []Type{ArmRaise, SideStep, MarchInPlace, SquatHold, TorsoTwist, JumpingJacks, HeelWalk, BalanceReach}

// Lookup returns the rule for a movement type.
func Lookup(t Type) (Rule, bool) {
	r, ok := rules[t]
	return r, ok
}

// Check evaluates a pose against a movement type.
func Check(t Type, pose *detector.PoseLandmarks) Result {
	if pose == nil {
		return Result{Feedback: []string{MsgNoPose}}
	}

	rule, ok := rules[t]
	if !ok {
		return Result{Feedback: []string{MsgUnknown}}
	}

	if rule.Detect(pose) {
		return Result{Detected: true, Feedback: []string{rule.Success}}
	}
	return Result{Feedback: []string{rule.Corrective}}
}

// armRaise: both wrists above their shoulders.
func armRaise(p *detector.PoseLandmarks) bool {
	return p.At(detector.LeftWrist).Y < p.At(detector.LeftShoulder).Y &&
		p.At(detector.RightWrist).Y < p.At(detector.RightShoulder).Y
}

// sideStep: ankles spread wide.
func sideStep(p *detector.PoseLandmarks) bool {
	return math.Abs(p.At(detector.LeftAnkle).X-p.At(detector.RightAnkle).X) > 0.35
}

// marchInPlace: at least one knee above its hip.
func marchInPlace(p *detector.PoseLandmarks) bool {
	return p.At(detector.LeftKnee).Y < p.At(detector.LeftHip).Y ||
		p.At(detector.RightKnee).Y < p.At(detector.RightHip).Y
}

// squatHold: both hips below their knees.
func squatHold(p *detector.PoseLandmarks) bool {
	return p.At(detector.LeftHip).Y > p.At(detector.LeftKnee).Y &&
		p.At(detector.RightHip).Y > p.At(detector.RightKnee).Y
}

// torsoTwist: shoulders far apart horizontally.
func torsoTwist(p *detector.PoseLandmarks) bool {
	return math.Abs(p.At(detector.LeftShoulder).X-p.At(detector.RightShoulder).X) > 0.25
}

// jumpingJacks: both wrists above the nose and ankles spread.
func jumpingJacks(p *detector.PoseLandmarks) bool {
	head := p.At(detector.Nose)
	return p.At(detector.LeftWrist).Y < head.Y &&
		p.At(detector.RightWrist).Y < head.Y &&
		math.Abs(p.At(detector.LeftAnkle).X-p.At(detector.RightAnkle).X) > 0.4
}

// heelWalk: both toes raised above the heels.
func heelWalk(p *detector.PoseLandmarks) bool {
	return p.At(detector.LeftFootIndex).Y < p.At(detector.LeftHeel).Y &&
		p.At(detector.RightFootIndex).Y < p.At(detector.RightHeel).Y
}

// balanceReach: both wrists above the hips with one foot lifted.
func balanceReach(p *detector.PoseLandmarks) bool {
	return p.At(detector.LeftWrist).Y < p.At(detector.LeftHip).Y &&
		p.At(detector.RightWrist).Y < p.At(detector.RightHip).Y &&
		math.Abs(p.At(detector.LeftAnkle).Y-p.At(detector.RightAnkle).Y) > 0.2
}
