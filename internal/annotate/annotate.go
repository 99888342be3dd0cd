// Package annotate draws shape labels, outlines and per-frame counts onto a
// frame before it is presented.
package annotate

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"led-shapes/internal/processing/contours"
	"led-shapes/internal/shape"
)

var (
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	Blue  = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	Red   = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 0}
)

const font = gocv.FontHersheySimplex

// Box is one accepted model detection ready for drawing
type Box struct {
	Rect  image.Rectangle
	Shape shape.Shape
	Label string
}

// Regions labels each contour region and outlines its polygon
func Regions(img *gocv.Mat, regions []contours.Region) {
	for _, r := range regions {
		c := Blue
		if r.Shape == shape.Square {
			c = Green
		}
		gocv.PutText(img, r.Shape.String(), r.LabelAnchor(), font, 0.6, c, 2)

		outline := gocv.NewPointsVectorFromPoints([][]image.Point{r.Polygon})
		gocv.DrawContours(img, outline, 0, Red, 3)
		outline.Close()
	}
}

// ColorSummary writes the majority label and the counts for the color pipeline
func ColorSummary(img *gocv.Mat, t shape.Tally, d shape.Decision) {
	c := Blue
	if d == shape.SquareDominant {
		c = Green
	}
	gocv.PutText(img, d.Label(shape.TieFavorsCircle), image.Pt(10, 30), font, 1, c, 2)
	gocv.PutText(img, CountsText(t), image.Pt(10, 60), font, 0.7, Black, 2)
}

// CountsText is the color pipeline's counts line
func CountsText(t shape.Tally) string {
	return fmt.Sprintf("Squares:%d, Circles:%d", t.Squares, t.Circles)
}

// Boxes draws each accepted detection with its class label
func Boxes(img *gocv.Mat, boxes []Box) {
	for _, b := range boxes {
		c := Blue
		if b.Shape == shape.Circle {
			c = Green
		}
		gocv.Rectangle(img, b.Rect, c, 2)
		gocv.PutText(img, b.Label, image.Pt(b.Rect.Min.X, b.Rect.Min.Y-10), font, 0.6, c, 2)
	}
}

// BoxLabel formats a detection label as "<class>: <confidence>"
func BoxLabel(className string, confidence float64) string {
	return fmt.Sprintf("%s: %.2f", className, confidence)
}

// ModelSummary writes the counts and the majority label for the model pipeline.
// An unlabeled frame draws an empty string.
func ModelSummary(img *gocv.Mat, t shape.Tally, d shape.Decision) {
	gocv.PutText(img, fmt.Sprintf("Circles: %d", t.Circles), image.Pt(10, 30), font, 0.7, Green, 2)
	gocv.PutText(img, fmt.Sprintf("Squares: %d", t.Squares), image.Pt(10, 60), font, 0.7, Blue, 2)
	gocv.PutText(img, d.Label(shape.TieUnlabeled), image.Pt(10, 90), font, 0.8, Red, 2)
}
