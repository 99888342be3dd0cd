package filters

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"led-shapes/internal/opencv/safe"
	"led-shapes/internal/processing/chain"
)

// HSVConverter converts a BGR frame to 8-bit OpenCV HSV
type HSVConverter struct{}

func NewHSVConverter() *HSVConverter {
	return &HSVConverter{}
}

func (h *HSVConverter) Name() string {
	return "hsv_converter"
}

func (h *HSVConverter) Apply(ctx context.Context, input *safe.Mat, params chain.Params) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := safe.ValidateColorFrame(input, h.Name()); err != nil {
		return nil, err
	}

	dst := gocv.NewMat()
	gocv.CvtColor(input.GetMat(), &dst, gocv.ColorBGRToHSV)
	if dst.Empty() {
		dst.Close()
		return nil, fmt.Errorf("BGR to HSV conversion produced an empty Mat")
	}

	return safe.Wrap(dst, "hsv"), nil
}
