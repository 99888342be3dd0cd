package pipeline

import (
	"context"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"led-shapes/internal/annotate"
	"led-shapes/internal/processing/contours"
	"led-shapes/internal/shape"
)

// Kind selects one of the two mutually exclusive pipelines
type Kind string

const (
	// Color isolates an HSV range and classifies contour polygons
	Color Kind = "color"
	// Model classifies the boxes of a trained detector
	Model Kind = "model"
)

// ParseKind validates a pipeline name
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Color, Model:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown pipeline %q (want %q or %q)", s, Color, Model)
	}
}

// TiePolicy is the majority rule the pipeline reports with
func (k Kind) TiePolicy() shape.TiePolicy {
	if k == Model {
		return shape.TieUnlabeled
	}
	return shape.TieFavorsCircle
}

// FrameProcessor turns one captured frame into an annotated Result.
// The input frame stays owned by the caller.
type FrameProcessor interface {
	Process(ctx context.Context, frame gocv.Mat) (*Result, error)
	Kind() Kind
	Close() error
}

// Result is everything derived from a single frame. It is owned by the step
// that produced it and must be closed once presented.
type Result struct {
	Kind     Kind
	Frame    gocv.Mat  // annotated copy of the input
	Mask     *gocv.Mat // cleaned binary mask, color pipeline only
	Tally    shape.Tally
	Decision shape.Decision

	Regions  []contours.Region // color pipeline
	Boxes    []annotate.Box    // model pipeline, accepted detections
	Rejected int               // model pipeline, detections under the confidence gate

	Duration time.Duration
}

// Label is the overlay text for the frame's decision
func (r *Result) Label() string {
	return r.Decision.Label(r.Kind.TiePolicy())
}

// Close releases the Mats held by the result
func (r *Result) Close() {
	if r == nil {
		return
	}
	r.Frame.Close()
	if r.Mask != nil {
		r.Mask.Close()
		r.Mask = nil
	}
}
