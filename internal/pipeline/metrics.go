package pipeline

import (
	"time"

	"led-shapes/internal/shape"
)

// RunMetrics aggregates per-frame results for the end-of-run summary.
// Nothing here feeds back into classification.
type RunMetrics struct {
	Frames         int
	Squares        int
	Circles        int
	Rejected       int
	SquareFrames   int
	CircleFrames   int
	UnlabeledFrame int
	ProcessingTime time.Duration
	Started        time.Time
}

func NewRunMetrics(now time.Time) *RunMetrics {
	return &RunMetrics{Started: now}
}

// Record adds one frame's result
func (m *RunMetrics) Record(r *Result) {
	m.Frames++
	m.Squares += r.Tally.Squares
	m.Circles += r.Tally.Circles
	m.Rejected += r.Rejected
	m.ProcessingTime += r.Duration

	switch r.Decision {
	case shape.SquareDominant:
		m.SquareFrames++
	case shape.CircleDominant:
		m.CircleFrames++
	default:
		m.UnlabeledFrame++
	}
}

// FPS is the processed frame rate since Started
func (m *RunMetrics) FPS(now time.Time) float64 {
	elapsed := now.Sub(m.Started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(m.Frames) / elapsed
}

// Fields renders the summary for structured logging
func (m *RunMetrics) Fields(now time.Time) map[string]interface{} {
	fields := map[string]interface{}{
		"frames":          m.Frames,
		"squares":         m.Squares,
		"circles":         m.Circles,
		"square_frames":   m.SquareFrames,
		"circle_frames":   m.CircleFrames,
		"unlabeled_frame": m.UnlabeledFrame,
		"rejected":        m.Rejected,
		"elapsed":         now.Sub(m.Started).Round(time.Millisecond).String(),
		"fps":             m.FPS(now),
	}
	if m.Frames > 0 {
		fields["avg_processing"] = (m.ProcessingTime / time.Duration(m.Frames)).String()
	}
	return fields
}
