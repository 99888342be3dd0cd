// Package detection runs the trained LED detector and reports raw boxes
package detection

import (
	"strconv"

	"gocv.io/x/gocv"

	"led-shapes/internal/shape"
)

// Detector is the interface for inference backends
type Detector interface {
	// Detect finds LED markers in a BGR frame. Boxes are in frame pixels.
	Detect(frame gocv.Mat) ([]shape.Detection, error)

	// Close releases resources
	Close() error
}

// Config holds detector configuration
type Config struct {
	ModelPath        string   // Path to the ONNX export of the trained model
	ConfidenceThresh float32  // Candidate floor before NMS
	NMSThresh        float32  // IoU above which overlapping boxes are suppressed
	InputWidth       int      // Model input width
	InputHeight      int      // Model input height
	ClassNames       []string // Label per class index
}

// DefaultConfig returns the defaults of the exported YOLO11 model.
// The candidate floor and IoU are close to the inference engine's own
// defaults, which run on a letterboxed input; here the frame is resized
// directly. The stricter acceptance gate in package shape decides what counts.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "best.onnx",
		ConfidenceThresh: 0.25,
		NMSThresh:        0.7,
		InputWidth:       640,
		InputHeight:      640,
		ClassNames:       []string{"circle", "square"},
	}
}

// ClassName returns the label for a class index
func (c Config) ClassName(id int) string {
	if id >= 0 && id < len(c.ClassNames) {
		return c.ClassNames[id]
	}
	return "class" + strconv.Itoa(id)
}
