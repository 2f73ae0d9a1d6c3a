// Package extractor turns a client frame into landmarks. It decodes the
// frame, runs the shared estimator, classifies the hand gesture and renders
// the landmark overlay returned to the client.
//
// Extraction is fail-soft: decode and estimation failures are logged and
// reported as "no detection", never as errors.
package extractor

import (
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/ayusman/motionlab/internal/detector"
	"github.com/ayusman/motionlab/internal/frame"
	"github.com/ayusman/motionlab/internal/gesture"
)

// Config controls frame preprocessing and overlay rendering.
type Config struct {
	// Annotate enables the landmark overlay in the returned frame.
	Annotate bool

	// MaxFrameWidth downscales wider frames before estimation. Zero disables.
	MaxFrameWidth int
}

// DefaultConfig returns the configuration used by the server.
func DefaultConfig() Config {
	return Config{
		Annotate:      true,
		MaxFrameWidth: 960,
	}
}

// HandResult is the outcome of hand extraction on one frame.
type HandResult struct {
	Hand           *detector.HandLandmarks
	Gesture        gesture.Gesture
	ProcessedFrame string
}

// Detected reports whether a hand was found.
func (r HandResult) Detected() bool {
	return r.Hand != nil
}

// Landmarks returns the hand's 21 points, or nil when no hand was found.
func (r HandResult) Landmarks() []detector.Point3D {
	return r.Hand.List()
}

// PoseResult is the outcome of pose extraction on one frame.
type PoseResult struct {
	Pose           *detector.PoseLandmarks
	ProcessedFrame string
}

// Detected reports whether a body was found.
func (r PoseResult) Detected() bool {
	return r.Pose != nil
}

// Extractor runs landmark extraction against a shared estimator.
type Extractor struct {
	estimator detector.Estimator
	config    Config
	log       logrus.FieldLogger
}

// New creates an Extractor.
func New(estimator detector.Estimator, config Config, log logrus.FieldLogger) *Extractor {
	return &Extractor{
		estimator: estimator,
		config:    config,
		log:       log.WithField("component", "extractor"),
	}
}

// Hands decodes a base64 frame and extracts the first hand in it.
func (e *Extractor) Hands(frameB64 string) HandResult {
	mat, err := frame.Decode(frameB64)
	defer mat.Close()
	if err != nil {
		e.log.WithError(err).Debug("frame decode failed")
		return HandResult{Gesture: gesture.None}
	}
	return e.HandsFromMat(&mat)
}

// Pose decodes a base64 frame and extracts the body landmarks in it.
func (e *Extractor) Pose(frameB64 string) PoseResult {
	mat, err := frame.Decode(frameB64)
	defer mat.Close()
	if err != nil {
		e.log.WithError(err).Debug("frame decode failed")
		return PoseResult{}
	}
	return e.PoseFromMat(&mat)
}

// HandsFromMat extracts the first hand from an already decoded frame.
// The frame may be resized and drawn on; the caller still owns it.
func (e *Extractor) HandsFromMat(mat *gocv.Mat) HandResult {
	result := HandResult{Gesture: gesture.None}
	if mat == nil || mat.Empty() {
		return result
	}

	frame.FitWidth(mat, e.config.MaxFrameWidth)

	hands, err := e.estimator.ExtractHands(mat)
	if err != nil {
		e.log.WithError(err).Warn("hand extraction failed")
		return result
	}

	if len(hands) > 0 {
		hand := hands[0]
		result.Hand = &hand
		result.Gesture = gesture.ClassifyHand(&hand)
	}

	if e.config.Annotate {
		var points []frame.Point
		if result.Hand != nil {
			points = make([]frame.Point, 0, detector.NumLandmarks)
			for _, p := range result.Hand.Points {
				points = append(points, frame.Point{X: p.X, Y: p.Y})
			}
		}
		result.ProcessedFrame = e.render(mat, points, detector.HandConnections)
	}

	return result
}

// PoseFromMat extracts body landmarks from an already decoded frame.
// The frame may be resized and drawn on; the caller still owns it.
func (e *Extractor) PoseFromMat(mat *gocv.Mat) PoseResult {
	var result PoseResult
	if mat == nil || mat.Empty() {
		return result
	}

	frame.FitWidth(mat, e.config.MaxFrameWidth)

	pose, err := e.estimator.ExtractPose(mat)
	if err != nil {
		e.log.WithError(err).Warn("pose extraction failed")
		return result
	}
	result.Pose = pose

	if e.config.Annotate {
		var points []frame.Point
		if pose != nil {
			points = make([]frame.Point, 0, detector.NumPoseLandmarks)
			for _, p := range pose.Points {
				points = append(points, frame.Point{X: p.X, Y: p.Y})
			}
		}
		result.ProcessedFrame = e.render(mat, points, detector.PoseConnections)
	}

	return result
}

// render draws the overlay and re-encodes the frame. Failures only drop the
// processed frame.
func (e *Extractor) render(mat *gocv.Mat, points []frame.Point, connections [][2]int) string {
	frame.DrawLandmarks(mat, points, connections)

	encoded, err := frame.Encode(*mat)
	if err != nil {
		e.log.WithError(err).Debug("frame encode failed")
		return ""
	}
	return encoded
}
