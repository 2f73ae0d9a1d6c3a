package frame

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Overlay colors and sizes match the MediaPipe drawing defaults used by the
// web client.
var landmarkColor = color.RGBA{G: 255, A: 255}

const (
	pointRadius   = 2
	lineThickness = 2
)

// Point is a normalized image coordinate in [0,1].
type Point struct {
	X, Y float64
}

// DrawLandmarks draws connections then points onto mat. Points are
// normalized; connections index into points and out-of-range pairs are
// skipped.
func DrawLandmarks(mat *gocv.Mat, points []Point, connections [][2]int) {
	if mat == nil || mat.Empty() || len(points) == 0 {
		return
	}

	w, h := mat.Cols(), mat.Rows()
	toPixel := func(p Point) image.Point {
		return image.Point{X: int(p.X * float64(w)), Y: int(p.Y * float64(h))}
	}

	for _, c := range connections {
		if c[0] < 0 || c[1] < 0 || c[0] >= len(points) || c[1] >= len(points) {
			continue
		}
		gocv.Line(mat, toPixel(points[c[0]]), toPixel(points[c[1]]), landmarkColor, lineThickness)
	}
	for _, p := range points {
		gocv.Circle(mat, toPixel(p), pointRadius, landmarkColor, lineThickness)
	}
}
