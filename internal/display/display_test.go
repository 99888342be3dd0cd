package display

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"gocv.io/x/gocv"

	"led-shapes/internal/logger"
	"led-shapes/internal/models"
	"led-shapes/internal/pipeline"
	"led-shapes/internal/shape"
)

func TestWaitMillis(t *testing.T) {
	tests := []struct {
		wait time.Duration
		want int
	}{
		{0, 1},
		{time.Microsecond, 1},
		{time.Millisecond, 1},
		{50 * time.Millisecond, 50},
	}
	for _, tt := range tests {
		if got := waitMillis(tt.wait); got != tt.want {
			t.Errorf("waitMillis(%v) = %d, want %d", tt.wait, got, tt.want)
		}
	}
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		kind     pipeline.Kind
		tally    shape.Tally
		decision string
	}{
		{pipeline.Color, shape.Tally{Squares: 2, Circles: 1}, "Squared leds"},
		{pipeline.Color, shape.Tally{}, "Circular leds"},
		{pipeline.Model, shape.Tally{Circles: 2, Squares: 1}, "Circular LEDs"},
		{pipeline.Model, shape.Tally{}, ""},
	}
	for _, tt := range tests {
		r := &pipeline.Result{Kind: tt.kind, Tally: tt.tally, Decision: tt.tally.Decide(tt.kind.TiePolicy())}
		decision, counts := statusText(r)
		if decision != tt.decision {
			t.Errorf("%s %+v: decision = %q, want %q", tt.kind, tt.tally, decision, tt.decision)
		}
		if counts == "" {
			t.Errorf("%s %+v: empty counts", tt.kind, tt.tally)
		}
	}
}

func TestPanelEscapeKey(t *testing.T) {
	app := test.NewApp()
	p := NewPanel(app, pipeline.Model, nil, logger.Nop())

	if got := p.PollKey(time.Millisecond); got != NoKey {
		t.Errorf("idle poll = %d, want %d", got, NoKey)
	}

	onKey := p.window.Canvas().OnTypedKey()
	onKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	onKey(&fyne.KeyEvent{Name: fyne.KeyEscape})

	if got := p.PollKey(10 * time.Millisecond); got != EscapeKey {
		t.Errorf("poll after escape = %d, want %d", got, EscapeKey)
	}
}

func TestPanelColorLayout(t *testing.T) {
	app := test.NewApp()
	th := models.NewThresholds(models.DefaultHSVRange())
	p := NewPanel(app, pipeline.Color, th, logger.Nop())

	if p.params == nil {
		t.Fatal("color panel needs sliders")
	}
	if !p.images.HasMask() {
		t.Error("color panel needs a mask pane")
	}
	if p.params.Value(models.SMin) != 80 {
		t.Errorf("S_min slider = %d, want 80", p.params.Value(models.SMin))
	}
}

func TestPanelPresentAfterCloseIsNoop(t *testing.T) {
	app := test.NewApp()
	p := NewPanel(app, pipeline.Model, nil, logger.Nop())

	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	r := &pipeline.Result{Kind: pipeline.Model, Frame: gocv.NewMat()}
	defer r.Close()

	if err := p.Present(r); err != nil {
		t.Errorf("Present after close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
