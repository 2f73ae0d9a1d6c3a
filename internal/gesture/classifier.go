// Package gesture classifies a single hand pose into a discrete gesture label
// using finger-extension heuristics.
package gesture

import (
	"github.com/ayusman/motionlab/internal/detector"
)

// Gesture is a discrete label derived from one hand's landmarks.
type Gesture string

const (
	Rock     Gesture = "rock"
	Paper    Gesture = "paper"
	Scissors Gesture = "scissors"
	Point    Gesture = "point"
	ThumbsUp Gesture = "thumbs_up"
	Wave     Gesture = "wave"
	OpenPalm Gesture = "open_palm"
	None     Gesture = "none"
)

// All lists every gesture label, including None.
var All = []Gesture{Rock, Paper, Scissors, Point, ThumbsUp, Wave, OpenPalm, None}

// Finger positions within a Fingers result.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
)

// Fingers holds the extended state of thumb, index, middle, ring and pinky.
type Fingers [5]bool

// Count returns the number of extended fingers.
func (f Fingers) Count() int {
	n := 0
	for _, up := range f {
		if up {
			n++
		}
	}
	return n
}

// fingerJoints pairs each non-thumb tip with the PIP joint it is compared against.
var fingerJoints = [4][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// Valid reports whether s names a known gesture.
func Valid(s string) bool {
	for _, g := range All {
		if string(g) == s {
			return true
		}
	}
	return false
}

// ExtendedFingers reports which fingers are extended.
//
// The thumb compares tip and IP joint along x. When the pinky base (17) is
// left of the index base (5) the hand is treated as a right hand as seen by
// the camera and the thumb is extended when its tip is further right.
// The other fingers are extended when the tip is above (smaller y) the PIP.
func ExtendedFingers(points []detector.Point3D) (Fingers, bool) {
	var f Fingers
	if len(points) < detector.NumLandmarks {
		return f, false
	}

	thumbTip, thumbIP := points[detector.ThumbTip], points[detector.ThumbIP]
	if points[detector.PinkyMCP].X < points[detector.IndexMCP].X {
		f[Thumb] = thumbTip.X > thumbIP.X
	} else {
		f[Thumb] = thumbTip.X < thumbIP.X
	}

	for i, joint := range fingerJoints {
		f[Index+i] = points[joint[0]].Y < points[joint[1]].Y
	}

	return f, true
}

// Classify maps hand landmarks to a gesture. The first matching rule wins.
// Fewer than 21 landmarks, or any failure while reading them, yields None.
func Classify(points []detector.Point3D) (g Gesture) {
	defer func() {
		if recover() != nil {
			g = None
		}
	}()

	f, ok := ExtendedFingers(points)
	if !ok {
		return None
	}

	total := f.Count()
	switch {
	case total == 0:
		return Rock
	case total == 5:
		return Paper
	case total == 2 && f[Index] && f[Middle]:
		return Scissors
	case total == 1 && f[Index]:
		return Point
	case total == 1 && f[Thumb]:
		return ThumbsUp
	case total >= 4:
		return Wave
	}
	return OpenPalm
}

// ClassifyHand classifies a detected hand; a nil hand yields None.
func ClassifyHand(hand *detector.HandLandmarks) Gesture {
	if hand == nil {
		return None
	}
	return Classify(hand.Points[:])
}
