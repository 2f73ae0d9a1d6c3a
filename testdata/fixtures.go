// Package testdata provides synthetic camera frames for tests.
package testdata

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/ayusman/motionlab/internal/frame"
)

// Frame returns a base64 JPEG of a blank width x height camera frame.
func Frame(width, height int) (string, error) {
	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	defer mat.Close()

	b64, err := frame.Encode(mat)
	if err != nil {
		return "", fmt.Errorf("encode frame %dx%d: %w", width, height, err)
	}
	return b64, nil
}

// MustFrame is Frame for test setup; it panics on failure.
func MustFrame(width, height int) string {
	b64, err := Frame(width, height)
	if err != nil {
		panic(err)
	}
	return b64
}

// Solid returns a base64 JPEG of a width x height frame filled with one gray
// level.
func Solid(width, height int, level float64) (string, error) {
	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	defer mat.Close()
	mat.SetTo(gocv.NewScalar(level, level, level, 0))

	b64, err := frame.Encode(mat)
	if err != nil {
		return "", fmt.Errorf("encode gray %v frame: %w", level, err)
	}
	return b64, nil
}

// DataURL wraps a base64 JPEG the way browsers send canvas captures.
func DataURL(b64 string) string {
	return "data:image/jpeg;base64," + b64
}

// Sequence returns n frames alternating between black and white, so that
// consecutive frames always differ.
func Sequence(n, width, height int) ([]string, error) {
	frames := make([]string, 0, n)
	for i := 0; i < n; i++ {
		mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
		if i%2 == 1 {
			mat.SetTo(gocv.NewScalar(255, 255, 255, 0))
		}
		b64, err := frame.Encode(mat)
		mat.Close()
		if err != nil {
			return nil, fmt.Errorf("encode frame %d: %w", i, err)
		}
		frames = append(frames, b64)
	}
	return frames, nil
}
