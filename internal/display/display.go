// Package display shows pipeline results and reports the user's key presses.
package display

import (
	"time"

	"led-shapes/internal/annotate"
	"led-shapes/internal/pipeline"
)

const (
	FrameWindow = "frame"
	MaskWindow  = "mask"
	HSVWindow   = "HSV"
	ModelWindow = "YOLO11 Detection"

	// NoKey is returned by PollKey when nothing was pressed
	NoKey = -1
	// EscapeKey is the key code for Escape
	EscapeKey = 27
)

// waitMillis converts a poll wait to a HighGUI delay. Zero would block forever.
func waitMillis(wait time.Duration) int {
	ms := int(wait / time.Millisecond)
	if ms < 1 {
		return 1
	}
	return ms
}

// statusText renders the decision line and the counts line for a result
func statusText(r *pipeline.Result) (decision, counts string) {
	return r.Label(), annotate.CountsText(r.Tally)
}
