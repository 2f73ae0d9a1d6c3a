// Package frame converts between client supplied base64 images and gocv
// matrices and provides the image operations shared by the analysis paths.
package frame

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"gocv.io/x/gocv"
)

// ErrEmptyFrame is returned when a payload decodes to no image data.
var ErrEmptyFrame = errors.New("empty frame")

// Decode turns a base64 image, optionally wrapped in a data URL, into a BGR
// matrix. The caller owns the returned Mat.
func Decode(b64 string) (gocv.Mat, error) {
	if i := strings.Index(b64, ","); i >= 0 && strings.HasPrefix(b64, "data:") {
		b64 = b64[i+1:]
	}
	b64 = strings.TrimSpace(b64)
	if b64 == "" {
		return gocv.NewMat(), ErrEmptyFrame
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("decode base64: %w", err)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return mat, fmt.Errorf("decode image: %w", err)
	}
	if mat.Empty() {
		return mat, ErrEmptyFrame
	}
	return mat, nil
}

// Encode renders mat as JPEG and returns it base64 encoded.
func Encode(mat gocv.Mat) (string, error) {
	if mat.Empty() {
		return "", ErrEmptyFrame
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return "", fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	return base64.StdEncoding.EncodeToString(buf.GetBytes()), nil
}

// FitWidth downscales mat in place so that it is at most maxWidth pixels
// wide, keeping the aspect ratio. A non-positive maxWidth is a no-op.
func FitWidth(mat *gocv.Mat, maxWidth int) bool {
	if maxWidth <= 0 || mat.Empty() || mat.Cols() <= maxWidth {
		return false
	}

	height := mat.Rows() * maxWidth / mat.Cols()
	if height < 1 {
		height = 1
	}

	resized := gocv.NewMat()
	gocv.Resize(*mat, &resized, image.Point{X: maxWidth, Y: height}, 0, 0, gocv.InterpolationArea)
	if resized.Empty() {
		resized.Close()
		return false
	}

	mat.Close()
	*mat = resized
	return true
}
