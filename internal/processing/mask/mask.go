// Package mask isolates LED candidate pixels by HSV range.
package mask

import (
	"context"
	"fmt"

	"led-shapes/internal/models"
	"led-shapes/internal/opencv/safe"
	"led-shapes/internal/processing/chain"
	"led-shapes/internal/processing/filters"
)

// Extractor blurs a BGR frame and turns it into a cleaned binary mask.
// The morphology order (close, open, erode) decides which regions survive.
type Extractor struct {
	blur  *filters.GaussianFilter
	chain *chain.ProcessingChain
}

func NewExtractor() *Extractor {
	return &Extractor{
		blur: filters.NewGaussianFilter(),
		chain: chain.NewProcessingChain(
			filters.NewHSVConverter(),
			filters.NewRangeMask(),
			filters.NewCloseFilter(),
			filters.NewOpenFilter(),
			filters.NewErodeFilter(),
		),
	}
}

// Steps names the mask stages in execution order
func (e *Extractor) Steps() []string {
	return append([]string{e.blur.Name()}, e.chain.GetStepNames()...)
}

// Extract returns the blurred frame and its mask. Both are owned by the caller.
func (e *Extractor) Extract(ctx context.Context, frame *safe.Mat, r models.HSVRange) (blurred, mask *safe.Mat, err error) {
	if err := safe.ValidateColorFrame(frame, "extract"); err != nil {
		return nil, nil, err
	}

	params := chain.Params{Range: r}

	blurred, err = e.blur.Apply(ctx, frame, params)
	if err != nil {
		return nil, nil, fmt.Errorf("blur: %w", err)
	}

	mask, err = e.chain.Execute(ctx, blurred, params)
	if err != nil {
		blurred.Close()
		return nil, nil, fmt.Errorf("mask: %w", err)
	}

	return blurred, mask, nil
}
