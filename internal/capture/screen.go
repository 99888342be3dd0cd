package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
	"gocv.io/x/gocv"
)

// Screen grabs a desktop rectangle per frame, useful for pointing the
// pipelines at a video played on screen.
type Screen struct {
	rect image.Rectangle
}

// NewScreen captures rect, or the whole primary screen when rect is empty
func NewScreen(rect image.Rectangle) (*Screen, error) {
	if rect.Empty() {
		full, err := screenshot.ScreenRect()
		if err != nil {
			return nil, fmt.Errorf("query screen size: %w", err)
		}
		rect = full
	}
	return &Screen{rect: rect}, nil
}

func (s *Screen) Read(dst *gocv.Mat) bool {
	img, err := screenshot.CaptureRect(s.rect)
	if err != nil {
		return false
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return false
	}
	defer mat.Close()

	mat.CopyTo(dst)
	return !dst.Empty()
}

func (s *Screen) Close() error {
	return nil
}
