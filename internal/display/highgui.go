package display

import (
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"led-shapes/internal/logger"
	"led-shapes/internal/models"
	"led-shapes/internal/pipeline"
)

// HighGUI presents results in OpenCV windows. For the color pipeline it also
// owns the HSV trackbars and pushes their positions through the threshold setter.
type HighGUI struct {
	kind       pipeline.Kind
	thresholds *models.Thresholds
	logger     logger.Logger

	frame     *gocv.Window
	mask      *gocv.Window
	hsv       *gocv.Window
	trackbars map[models.Channel]*gocv.Trackbar
}

// NewHighGUI opens the windows for a pipeline. thresholds may be nil for the model pipeline.
func NewHighGUI(kind pipeline.Kind, thresholds *models.Thresholds, log logger.Logger) (*HighGUI, error) {
	if kind == pipeline.Color && thresholds == nil {
		return nil, errors.New("color pipeline needs thresholds")
	}

	h := &HighGUI{
		kind:       kind,
		thresholds: thresholds,
		logger:     log,
	}

	if kind == pipeline.Model {
		h.frame = gocv.NewWindow(ModelWindow)
		return h, nil
	}

	h.frame = gocv.NewWindow(FrameWindow)
	h.mask = gocv.NewWindow(MaskWindow)
	h.hsv = gocv.NewWindow(HSVWindow)
	h.trackbars = make(map[models.Channel]*gocv.Trackbar, len(models.Channels))

	current := thresholds.Snapshot()
	for _, c := range models.Channels {
		tb := h.hsv.CreateTrackbar(c.String(), c.Range().Max)
		tb.SetPos(current.Value(c))
		h.trackbars[c] = tb
	}

	log.Debug("HighGUI", "windows opened", map[string]interface{}{
		"pipeline":  string(kind),
		"trackbars": len(h.trackbars),
	})

	return h, nil
}

func (h *HighGUI) Present(r *pipeline.Result) error {
	if r.Frame.Empty() {
		return fmt.Errorf("empty %s frame", r.Kind)
	}
	h.frame.IMShow(r.Frame)
	if h.mask != nil && r.Mask != nil && !r.Mask.Empty() {
		h.mask.IMShow(*r.Mask)
	}
	return nil
}

// PollKey runs the HighGUI event loop for wait, then syncs trackbar positions
// into the thresholds for the next frame.
func (h *HighGUI) PollKey(wait time.Duration) int {
	key := h.frame.WaitKey(waitMillis(wait))
	h.syncTrackbars()
	return key
}

func (h *HighGUI) syncTrackbars() {
	for c, tb := range h.trackbars {
		pos := tb.GetPos()
		if pos != h.thresholds.Get(c) {
			h.thresholds.Set(c, pos)
		}
	}
}

func (h *HighGUI) Close() error {
	var errs []error
	for _, w := range []*gocv.Window{h.hsv, h.mask, h.frame} {
		if w == nil {
			continue
		}
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	h.hsv, h.mask, h.frame = nil, nil, nil
	return errors.Join(errs...)
}
