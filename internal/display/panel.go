package display

import (
	"fmt"
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"led-shapes/internal/gui/widgets"
	"led-shapes/internal/logger"
	"led-shapes/internal/models"
	"led-shapes/internal/pipeline"
)

// Panel presents results in a fyne window with sliders in place of trackbars.
// The fyne app must run on the main goroutine; the run loop calls Present and
// PollKey from its own goroutine.
type Panel struct {
	window fyne.Window
	images *widgets.ImageDisplay
	params *widgets.ParameterPanel
	status *widgets.StatusBar
	logger logger.Logger

	keys chan int

	mu     sync.Mutex
	closed bool
}

// NewPanel builds the window. thresholds may be nil for the model pipeline.
func NewPanel(app fyne.App, kind pipeline.Kind, thresholds *models.Thresholds, log logger.Logger) *Panel {
	title := FrameWindow
	if kind == pipeline.Model {
		title = ModelWindow
	}

	p := &Panel{
		window: app.NewWindow(title),
		images: widgets.NewImageDisplay(kind == pipeline.Color),
		status: widgets.NewStatusBar(),
		logger: log,
		keys:   make(chan int, 8),
	}

	var controls fyne.CanvasObject
	if kind == pipeline.Color && thresholds != nil {
		p.params = widgets.NewParameterPanel(thresholds.Snapshot())
		p.params.SetParameterChangeHandler(func(c models.Channel, v int) {
			thresholds.Set(c, v)
		})
		controls = p.params.GetContainer()
	}

	p.window.SetContent(container.NewBorder(controls, p.status.GetContainer(), nil, nil, p.images.GetContainer()))
	p.window.SetMaster()

	p.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			p.pushKey(EscapeKey)
		}
	})
	p.window.SetOnClosed(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		p.pushKey(EscapeKey)
	})

	return p
}

// Show must be called on the fyne goroutine before the app runs
func (p *Panel) Show() {
	p.window.Show()
}

func (p *Panel) pushKey(key int) {
	select {
	case p.keys <- key:
	default:
	}
}

func (p *Panel) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Panel) Present(r *pipeline.Result) error {
	if p.isClosed() {
		return nil
	}

	frame, err := r.Frame.ToImage()
	if err != nil {
		return fmt.Errorf("frame to image: %w", err)
	}

	var mask image.Image
	if r.Mask != nil && !r.Mask.Empty() && p.images.HasMask() {
		if mask, err = r.Mask.ToImage(); err != nil {
			return fmt.Errorf("mask to image: %w", err)
		}
	}

	decision, counts := statusText(r)

	fyne.Do(func() {
		p.images.SetFrame(frame)
		if mask != nil {
			p.images.SetMask(mask)
		}
		p.status.SetStatus(decision, counts)
	})
	return nil
}

// PollKey waits up to wait for a key typed in the window
func (p *Panel) PollKey(wait time.Duration) int {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case key := <-p.keys:
		return key
	case <-timer.C:
		return NoKey
	}
}

// Close closes the window, which quits the app since it is the master window
func (p *Panel) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	fyne.Do(func() {
		p.window.Close()
	})
	return nil
}
