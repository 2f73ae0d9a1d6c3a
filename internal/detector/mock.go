package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockEstimator is a test implementation of the Estimator interface.
// It allows tests to control the estimation results.
type MockEstimator struct {
	mu    sync.Mutex
	hands []HandLandmarks
	pose  *PoseLandmarks
	err   error
	calls int
}

// NewMockEstimator creates a new MockEstimator instance.
func NewMockEstimator() *MockEstimator {
	return &MockEstimator{}
}

// SetHands sets the hands that will be returned by ExtractHands.
func (m *MockEstimator) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetPose sets the pose that will be returned by ExtractPose.
func (m *MockEstimator) SetPose(pose *PoseLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pose = pose
}

// SetError sets the error that will be returned by both extract calls.
func (m *MockEstimator) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times the estimator was invoked.
func (m *MockEstimator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// ExtractHands returns the pre-configured hands or error.
func (m *MockEstimator) ExtractHands(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// ExtractPose returns the pre-configured pose or error.
func (m *MockEstimator) ExtractPose(frame *gocv.Mat) (*PoseLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.pose, nil
}

// Close is a no-op for the mock estimator.
func (m *MockEstimator) Close() error {
	return nil
}

// ThumbsUpLandmarks returns a preset right hand with only the thumb extended.
func ThumbsUpLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended up and out, tip beyond the IP joint
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.50, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.63, Y: 0.35, Z: 0.0}

	// Index finger curled (tip below PIP)
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	landmarks.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.68, Z: -0.05}
	landmarks.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.70, Z: -0.04}
	landmarks.Points[IndexTip] = Point3D{X: 0.50, Y: 0.72, Z: -0.02}

	// Middle finger curled
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.66, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.68, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}

	// Ring finger curled
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: 0.45, Y: 0.68, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.70, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}

	// Pinky finger curled
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.70, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.37, Y: 0.72, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.74, Z: -0.02}

	return landmarks
}

// OpenPalmLandmarks returns a preset right hand with all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return landmarks
}

// FistLandmarks returns a preset right hand with every finger curled.
func FistLandmarks() HandLandmarks {
	landmarks := ThumbsUpLandmarks()
	// Thumb folded across the palm
	landmarks.Points[ThumbIP] = Point3D{X: 0.56, Y: 0.66, Z: -0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.52, Y: 0.68, Z: -0.04}
	return landmarks
}

// ScissorsLandmarks returns a preset right hand with index and middle extended.
func ScissorsLandmarks() HandLandmarks {
	landmarks := FistLandmarks()
	open := OpenPalmLandmarks()
	for _, i := range []int{IndexMCP, IndexPIP, IndexDIP, IndexTip, MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip} {
		landmarks.Points[i] = open.Points[i]
	}
	return landmarks
}

// PointingLandmarks returns a preset right hand with only the index extended.
func PointingLandmarks() HandLandmarks {
	landmarks := FistLandmarks()
	open := OpenPalmLandmarks()
	for _, i := range []int{IndexMCP, IndexPIP, IndexDIP, IndexTip} {
		landmarks.Points[i] = open.Points[i]
	}
	return landmarks
}

// StandingPoseLandmarks returns a preset body standing upright in the middle
// of the frame: hips centered at x=0.5, shoulders level, arms down.
func StandingPoseLandmarks() *PoseLandmarks {
	pose := &PoseLandmarks{}
	set := func(i int, x, y float64) {
		pose.Points[i] = PoseLandmark{X: x, Y: y, Z: 0, Visibility: 0.99}
	}

	set(Nose, 0.50, 0.15)
	set(LeftEyeInner, 0.51, 0.13)
	set(LeftEye, 0.52, 0.13)
	set(LeftEyeOuter, 0.53, 0.13)
	set(RightEyeInner, 0.49, 0.13)
	set(RightEye, 0.48, 0.13)
	set(RightEyeOuter, 0.47, 0.13)
	set(LeftEar, 0.54, 0.14)
	set(RightEar, 0.46, 0.14)
	set(MouthLeft, 0.52, 0.18)
	set(MouthRight, 0.48, 0.18)

	set(LeftShoulder, 0.58, 0.28)
	set(RightShoulder, 0.42, 0.28)
	set(LeftElbow, 0.60, 0.40)
	set(RightElbow, 0.40, 0.40)
	set(LeftWrist, 0.61, 0.52)
	set(RightWrist, 0.39, 0.52)
	set(LeftPinky, 0.61, 0.55)
	set(RightPinky, 0.39, 0.55)
	set(LeftIndex, 0.61, 0.55)
	set(RightIndex, 0.39, 0.55)
	set(LeftThumb, 0.60, 0.54)
	set(RightThumb, 0.40, 0.54)

	set(LeftHip, 0.55, 0.55)
	set(RightHip, 0.45, 0.55)
	set(LeftKnee, 0.55, 0.72)
	set(RightKnee, 0.45, 0.72)
	set(LeftAnkle, 0.55, 0.90)
	set(RightAnkle, 0.45, 0.90)
	set(LeftHeel, 0.55, 0.92)
	set(RightHeel, 0.45, 0.92)
	set(LeftFootIndex, 0.56, 0.94)
	set(RightFootIndex, 0.44, 0.94)

	return pose
}
