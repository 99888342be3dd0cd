package filters

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"led-shapes/internal/opencv/safe"
	"led-shapes/internal/processing/chain"
)

// MorphKernelSize is the side of the all-ones structuring element
const MorphKernelSize = 5

func newKernel() gocv.Mat {
	return gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: MorphKernelSize, Y: MorphKernelSize})
}

// MorphologyFilter applies one morphologyEx operation with the 5x5 kernel
type MorphologyFilter struct {
	op   gocv.MorphType
	name string
}

func NewCloseFilter() *MorphologyFilter {
	return &MorphologyFilter{op: gocv.MorphClose, name: "morph_close"}
}

func NewOpenFilter() *MorphologyFilter {
	return &MorphologyFilter{op: gocv.MorphOpen, name: "morph_open"}
}

func (m *MorphologyFilter) Name() string {
	return m.name
}

func (m *MorphologyFilter) Apply(ctx context.Context, input *safe.Mat, params chain.Params) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := safe.ValidateMask(input, m.name); err != nil {
		return nil, err
	}

	kernel := newKernel()
	defer kernel.Close()

	dst := gocv.NewMat()
	gocv.MorphologyEx(input.GetMat(), &dst, m.op, kernel)
	if dst.Empty() {
		dst.Close()
		return nil, fmt.Errorf("%s produced an empty Mat", m.name)
	}

	return safe.Wrap(dst, m.name), nil
}

// ErodeFilter erodes once with the 5x5 kernel
type ErodeFilter struct{}

func NewErodeFilter() *ErodeFilter {
	return &ErodeFilter{}
}

func (e *ErodeFilter) Name() string {
	return "erode"
}

func (e *ErodeFilter) Apply(ctx context.Context, input *safe.Mat, params chain.Params) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := safe.ValidateMask(input, e.Name()); err != nil {
		return nil, err
	}

	kernel := newKernel()
	defer kernel.Close()

	dst := gocv.NewMat()
	gocv.Erode(input.GetMat(), &dst, kernel)
	if dst.Empty() {
		dst.Close()
		return nil, fmt.Errorf("erode produced an empty Mat")
	}

	return safe.Wrap(dst, "eroded"), nil
}
