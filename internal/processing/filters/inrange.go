package filters

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"led-shapes/internal/opencv/safe"
	"led-shapes/internal/processing/chain"
)

// RangeMask keeps pixels whose HSV triple lies within params.Range
type RangeMask struct{}

func NewRangeMask() *RangeMask {
	return &RangeMask{}
}

func (r *RangeMask) Name() string {
	return "range_mask"
}

func (r *RangeMask) Apply(ctx context.Context, input *safe.Mat, params chain.Params) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := safe.ValidateColorFrame(input, r.Name()); err != nil {
		return nil, err
	}

	dst := gocv.NewMat()
	lower := params.Range.LowerScalar()
	upper := params.Range.UpperScalar()

	gocv.InRangeWithScalar(input.GetMat(), lower, upper, &dst)
	if dst.Empty() {
		dst.Close()
		return nil, fmt.Errorf("range mask produced an empty Mat")
	}

	return safe.Wrap(dst, "mask"), nil
}
