package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"led-shapes/internal/logger"
	"led-shapes/internal/pipeline"
)

// EscapeKey is the key code that ends a run
const EscapeKey = 27

// ErrNoFrame is returned when the source cannot deliver a frame. It ends the run.
var ErrNoFrame = errors.New("failed to grab frame")

// Source delivers frames into a caller-owned Mat
type Source interface {
	Read(dst *gocv.Mat) bool
	Close() error
}

// Presenter shows results and reports the last key pressed, or -1
type Presenter interface {
	Present(r *pipeline.Result) error
	PollKey(wait time.Duration) int
	Close() error
}

type Options struct {
	KeyWait time.Duration
	MaskKey bool // compare only the low byte of the key code
	RunID   string
}

// DefaultOptions returns the key polling behavior of each pipeline
func DefaultOptions(k pipeline.Kind) Options {
	if k == pipeline.Model {
		return Options{KeyWait: time.Millisecond, MaskKey: true}
	}
	return Options{KeyWait: 50 * time.Millisecond}
}

// Controller drives the capture, process, present, poll cycle one frame at a time
type Controller struct {
	source    Source
	processor pipeline.FrameProcessor
	presenter Presenter
	opts      Options
	logger    logger.Logger

	frame   gocv.Mat
	metrics *pipeline.RunMetrics
	stopped atomic.Bool

	closeOnce sync.Once
	closeErr  error
}

func New(src Source, proc pipeline.FrameProcessor, pres Presenter, opts Options, log logger.Logger) *Controller {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	return &Controller{
		source:    src,
		processor: proc,
		presenter: pres,
		opts:      opts,
		logger:    log,
		frame:     gocv.NewMat(),
		metrics:   pipeline.NewRunMetrics(time.Now()),
	}
}

// ShouldStop reports whether the run has ended
func (c *Controller) ShouldStop() bool {
	return c.stopped.Load()
}

// Stop ends the run after the current step
func (c *Controller) Stop() {
	c.stopped.Store(true)
}

// Step processes exactly one frame
func (c *Controller) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		c.Stop()
		return err
	}

	if !c.source.Read(&c.frame) || c.frame.Empty() {
		c.Stop()
		return ErrNoFrame
	}

	res, err := c.processor.Process(ctx, c.frame)
	if err != nil {
		c.Stop()
		return fmt.Errorf("process frame %d: %w", c.metrics.Frames+1, err)
	}
	defer res.Close()

	c.metrics.Record(res)

	if err := c.presenter.Present(res); err != nil {
		c.Stop()
		return fmt.Errorf("present frame: %w", err)
	}

	key := c.presenter.PollKey(c.opts.KeyWait)
	if c.opts.MaskKey {
		key &= 0xFF
	}
	if key == EscapeKey {
		c.logger.Debug("Runner", "exit key pressed", nil)
		c.Stop()
	}

	return nil
}

// Run steps until the exit key, a missing frame or cancellation, then
// releases the source, processor and presenter on every path.
func (c *Controller) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	c.logger.Info("Runner", "run started", map[string]interface{}{
		"run_id":   c.opts.RunID,
		"pipeline": string(c.processor.Kind()),
		"key_wait": c.opts.KeyWait.String(),
	})

	for !c.ShouldStop() {
		stepErr := c.Step(ctx)
		switch {
		case stepErr == nil:
		case errors.Is(stepErr, ErrNoFrame):
			c.logger.Warning("Runner", stepErr.Error(), map[string]interface{}{
				"run_id": c.opts.RunID,
				"frames": c.metrics.Frames,
			})
		case errors.Is(stepErr, context.Canceled):
			c.logger.Debug("Runner", "run cancelled", nil)
		default:
			c.logSummary()
			return stepErr
		}
	}

	c.logSummary()
	return nil
}

func (c *Controller) logSummary() {
	fields := c.metrics.Fields(time.Now())
	fields["run_id"] = c.opts.RunID
	c.logger.Info("Runner", "run finished", fields)
}

// Close releases the presenter, processor and source. Safe to call repeatedly.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.Stop()
		var errs []error
		if err := c.presenter.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close presenter: %w", err))
		}
		if err := c.processor.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close processor: %w", err))
		}
		if err := c.source.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close source: %w", err))
		}
		c.frame.Close()
		c.closeErr = errors.Join(errs...)
	})
	return c.closeErr
}
