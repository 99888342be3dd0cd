package pipeline

import (
	"context"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"led-shapes/internal/annotate"
	"led-shapes/internal/detection"
	"led-shapes/internal/logger"
	"led-shapes/internal/shape"
)

// ModelPipeline classifies LEDs by the class index of a trained detector
type ModelPipeline struct {
	detector detection.Detector
	config   detection.Config
	logger   logger.Logger
}

func NewModelPipeline(det detection.Detector, cfg detection.Config, log logger.Logger) *ModelPipeline {
	return &ModelPipeline{
		detector: det,
		config:   cfg,
		logger:   log,
	}
}

func (p *ModelPipeline) Kind() Kind {
	return Model
}

func (p *ModelPipeline) Process(ctx context.Context, frame gocv.Mat) (*Result, error) {
	start := time.Now()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	dets, err := p.detector.Detect(frame)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	var tally shape.Tally
	boxes := make([]annotate.Box, 0, len(dets))
	rejected := 0

	for _, d := range dets {
		s, ok := shape.ClassifyDetection(d)
		if !ok {
			rejected++
			continue
		}
		tally.Add(s)
		boxes = append(boxes, annotate.Box{
			Rect:  d.Box,
			Shape: s,
			Label: annotate.BoxLabel(p.config.ClassName(d.ClassID), d.Confidence),
		})
	}

	decision := tally.Decide(Model.TiePolicy())

	out := frame.Clone()
	annotate.Boxes(&out, boxes)
	annotate.ModelSummary(&out, tally, decision)

	if len(dets) > 0 {
		p.logger.Debug("ModelPipeline", "detections", map[string]interface{}{
			"raw":      len(dets),
			"accepted": len(boxes),
			"rejected": rejected,
		})
	}

	return &Result{
		Kind:     Model,
		Frame:    out,
		Tally:    tally,
		Decision: decision,
		Boxes:    boxes,
		Rejected: rejected,
		Duration: time.Since(start),
	}, nil
}

// Close releases the detector
func (p *ModelPipeline) Close() error {
	return p.detector.Close()
}
