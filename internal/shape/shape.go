// Package shape holds the per-frame LED shape policy: how a candidate region
// is labelled, how labels are tallied, and which shape dominates a frame.
package shape

import "image"

// Shape is the label assigned to one candidate region.
type Shape int

const (
	Circle Shape = iota
	Square
)

func (s Shape) String() string {
	switch s {
	case Square:
		return "Square"
	default:
		return "Circle"
	}
}

// MinConfidence is the exclusive lower bound a detection score must exceed.
const MinConfidence = 0.5

// CircleClassID is the model class index that maps to Circle.
const CircleClassID = 0

// Detection is one bounding box reported by the inference engine.
type Detection struct {
	Box        image.Rectangle
	ClassID    int
	Confidence float64
}

// ClassifyVertices labels a polygon approximation by its vertex count.
// Convexity and aspect ratio are deliberately not consulted.
func ClassifyVertices(n int) Shape {
	if n == 4 {
		return Square
	}
	return Circle
}

// ClassifyPolygon labels an approximated boundary polygon.
func ClassifyPolygon(points []image.Point) Shape {
	return ClassifyVertices(len(points))
}

// ClassifyDetection labels a model detection. The second return is false when
// the detection does not clear MinConfidence and must be left out of the tally.
func ClassifyDetection(d Detection) (Shape, bool) {
	if !(d.Confidence > MinConfidence) {
		return Circle, false
	}
	if d.ClassID == CircleClassID {
		return Circle, true
	}
	return Square, true
}
