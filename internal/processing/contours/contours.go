// Package contours turns a binary mask into classified candidate regions.
package contours

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"led-shapes/internal/opencv/safe"
	"led-shapes/internal/shape"
)

// ApproxEpsilonFactor scales the contour perimeter into the polygon
// approximation tolerance.
const ApproxEpsilonFactor = 0.04

// Region is one outer contour of the mask after polygon approximation
type Region struct {
	Polygon []image.Point
	Shape   shape.Shape

	// Bounds and AspectRatio are only filled for four-vertex polygons.
	// They are informational and never affect Shape.
	Bounds      image.Rectangle
	AspectRatio float64
}

// LabelAnchor is where the per-region label is drawn
func (r Region) LabelAnchor() image.Point {
	if r.Shape == shape.Square {
		return image.Pt(r.Bounds.Min.X, r.Bounds.Min.Y-10)
	}
	if len(r.Polygon) == 0 {
		return image.Point{}
	}
	return image.Pt(r.Polygon[0].X, r.Polygon[0].Y-20)
}

// Find extracts the outer contours of mask, approximates each with a polygon
// and classifies it by vertex count. Every contour yields exactly one Region.
func Find(mask *safe.Mat) ([]Region, error) {
	if err := safe.ValidateMask(mask, "find contours"); err != nil {
		return nil, err
	}

	contours := gocv.FindContours(mask.GetMat(), gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	regions := make([]Region, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		region, err := approximate(contours.At(i))
		if err != nil {
			return nil, fmt.Errorf("contour %d: %w", i, err)
		}
		regions = append(regions, region)
	}

	return regions, nil
}

func approximate(contour gocv.PointVector) (Region, error) {
	epsilon := ApproxEpsilonFactor * gocv.ArcLength(contour, true)

	approx := gocv.ApproxPolyDP(contour, epsilon, true)
	defer approx.Close()

	points := approx.ToPoints()
	if len(points) == 0 {
		return Region{}, fmt.Errorf("empty polygon approximation")
	}

	return NewRegion(points), nil
}

// NewRegion classifies an approximated polygon
func NewRegion(points []image.Point) Region {
	r := Region{
		Polygon: points,
		Shape:   shape.ClassifyPolygon(points),
	}

	if r.Shape == shape.Square {
		r.Bounds = boundingRect(points)
		if h := r.Bounds.Dy(); h > 0 {
			r.AspectRatio = float64(r.Bounds.Dx()) / float64(h)
		}
	}

	return r
}

// boundingRect mirrors cv::boundingRect: the upright box holding every
// point, with inclusive pixel extents.
func boundingRect(points []image.Point) image.Rectangle {
	rect := image.Rectangle{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		rect.Min.X = min(rect.Min.X, p.X)
		rect.Min.Y = min(rect.Min.Y, p.Y)
		rect.Max.X = max(rect.Max.X, p.X)
		rect.Max.Y = max(rect.Max.Y, p.Y)
	}
	rect.Max = rect.Max.Add(image.Pt(1, 1))
	return rect
}

// Tally counts the shapes of a frame's regions
func Tally(regions []Region) shape.Tally {
	var t shape.Tally
	for _, r := range regions {
		t.Add(r.Shape)
	}
	return t
}
