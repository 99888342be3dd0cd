package filters

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"led-shapes/internal/opencv/safe"
	"led-shapes/internal/processing/chain"
)

// GaussianKernelSize is the blur window applied to every incoming frame
const GaussianKernelSize = 5

type GaussianFilter struct{}

func NewGaussianFilter() *GaussianFilter {
	return &GaussianFilter{}
}

func (g *GaussianFilter) Name() string {
	return "gaussian_filter"
}

// Apply blurs with a 5x5 kernel; sigma 0 lets OpenCV derive it from the size
func (g *GaussianFilter) Apply(ctx context.Context, input *safe.Mat, params chain.Params) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := safe.ValidateMatForOperation(input, g.Name()); err != nil {
		return nil, err
	}

	dst := gocv.NewMat()
	srcMat := input.GetMat()
	size := image.Point{X: GaussianKernelSize, Y: GaussianKernelSize}

	gocv.GaussianBlur(srcMat, &dst, size, 0, 0, gocv.BorderDefault)
	if dst.Empty() {
		dst.Close()
		return nil, fmt.Errorf("gaussian blur produced an empty Mat")
	}

	return safe.Wrap(dst, "blurred"), nil
}
