package pipeline

import (
	"context"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"led-shapes/internal/annotate"
	"led-shapes/internal/logger"
	"led-shapes/internal/models"
	"led-shapes/internal/opencv/safe"
	"led-shapes/internal/processing/contours"
	"led-shapes/internal/processing/mask"
)

// ColorPipeline classifies LEDs by the polygon approximation of HSV-masked regions
type ColorPipeline struct {
	thresholds *models.Thresholds
	extractor  *mask.Extractor
	logger     logger.Logger
}

func NewColorPipeline(thresholds *models.Thresholds, log logger.Logger) *ColorPipeline {
	return &ColorPipeline{
		thresholds: thresholds,
		extractor:  mask.NewExtractor(),
		logger:     log,
	}
}

func (p *ColorPipeline) Kind() Kind {
	return Color
}

// Thresholds exposes the live configuration for the input collaborator
func (p *ColorPipeline) Thresholds() *models.Thresholds {
	return p.thresholds
}

func (p *ColorPipeline) Process(ctx context.Context, frame gocv.Mat) (*Result, error) {
	start := time.Now()

	in, err := safe.NewMatFromMat(frame, "frame")
	if err != nil {
		return nil, fmt.Errorf("copy frame: %w", err)
	}
	defer in.Close()

	bounds := p.thresholds.Snapshot()

	blurred, m, err := p.extractor.Extract(ctx, in, bounds)
	if err != nil {
		return nil, err
	}
	defer blurred.Close()
	defer m.Close()

	regions, err := contours.Find(m)
	if err != nil {
		return nil, fmt.Errorf("contours: %w", err)
	}

	tally := contours.Tally(regions)
	decision := tally.Decide(Color.TiePolicy())

	out, err := blurred.Detach()
	if err != nil {
		return nil, err
	}
	maskMat, err := m.Detach()
	if err != nil {
		out.Close()
		return nil, err
	}

	annotate.Regions(&out, regions)
	annotate.ColorSummary(&out, tally, decision)

	for _, r := range regions {
		if r.AspectRatio > 0 {
			p.logger.Debug("ColorPipeline", "quad region", map[string]interface{}{
				"bounds":       r.Bounds.String(),
				"aspect_ratio": r.AspectRatio,
			})
		}
	}

	return &Result{
		Kind:     Color,
		Frame:    out,
		Mask:     &maskMat,
		Tally:    tally,
		Decision: decision,
		Regions:  regions,
		Duration: time.Since(start),
	}, nil
}

func (p *ColorPipeline) Close() error {
	return nil
}
