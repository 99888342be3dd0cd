package models

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"gocv.io/x/gocv"
)

// Channel identifies one of the six HSV bounds
type Channel int

const (
	HMin Channel = iota
	SMin
	VMin
	HMax
	SMax
	VMax
	channelCount
)

// Channels lists the bounds in slider order
var Channels = []Channel{HMin, SMin, VMin, HMax, SMax, VMax}

// OpenCV 8-bit HSV scale
const (
	HueMax        = 179
	SaturationMax = 255
	ValueMax      = 255
)

// ParameterRange defines the valid span of an integer parameter
type ParameterRange struct {
	Min int
	Max int
}

// Clamp forces v into the range
func (r ParameterRange) Clamp(v int) int {
	return max(r.Min, min(v, r.Max))
}

var channelNames = [channelCount]string{"H_min", "S_min", "V_min", "H_max", "S_max", "V_max"}

func (c Channel) String() string {
	if c < 0 || c >= channelCount {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// Range returns the slider bounds for the channel
func (c Channel) Range() ParameterRange {
	switch c {
	case HMin, HMax:
		return ParameterRange{Min: 0, Max: HueMax}
	case SMin, SMax:
		return ParameterRange{Min: 0, Max: SaturationMax}
	default:
		return ParameterRange{Min: 0, Max: ValueMax}
	}
}

// HSVRange is an immutable snapshot of the six bounds, used for one frame
type HSVRange struct {
	Lower [3]int
	Upper [3]int
}

// DefaultHSVRange isolates saturated yellow LEDs
func DefaultHSVRange() HSVRange {
	return HSVRange{
		Lower: [3]int{14, 80, 208},
		Upper: [3]int{44, 255, 255},
	}
}

// Value returns the bound for a channel
func (r HSVRange) Value(c Channel) int {
	if c < HMax {
		return r.Lower[c]
	}
	return r.Upper[c-HMax]
}

// LowerScalar returns the lower bound for gocv.InRangeWithScalar
func (r HSVRange) LowerScalar() gocv.Scalar {
	return gocv.NewScalar(float64(r.Lower[0]), float64(r.Lower[1]), float64(r.Lower[2]), 0)
}

// UpperScalar returns the upper bound for gocv.InRangeWithScalar
func (r HSVRange) UpperScalar() gocv.Scalar {
	return gocv.NewScalar(float64(r.Upper[0]), float64(r.Upper[1]), float64(r.Upper[2]), 0)
}

// ContainsHSV reports whether an 8-bit OpenCV HSV triple lies within the
// bounds, inclusive on both ends like cv::inRange.
func (r HSVRange) ContainsHSV(h, s, v int) bool {
	hsv := [3]int{h, s, v}
	for i := range hsv {
		if hsv[i] < r.Lower[i] || hsv[i] > r.Upper[i] {
			return false
		}
	}
	return true
}

// Contains reports whether a pixel falls within the bounds after conversion
// to the OpenCV HSV scale.
func (r HSVRange) Contains(c color.Color) bool {
	h, s, v := ToOpenCVHSV(c)
	return r.ContainsHSV(h, s, v)
}

// ToOpenCVHSV converts a color to 8-bit OpenCV HSV: hue in degrees/2
// (0..179), saturation and value in 0..255.
func ToOpenCVHSV(c color.Color) (h, s, v int) {
	cf, _ := colorful.MakeColor(c)
	hue, sat, val := cf.Hsv()
	h = int(hue/2 + 0.5)
	if h > HueMax {
		h = 0
	}
	s = int(sat*SaturationMax + 0.5)
	v = int(val*ValueMax + 0.5)
	return h, s, v
}

// Thresholds is the process-wide threshold configuration for the color
// pipeline. It is written by the input collaborator and read once per frame.
type Thresholds struct {
	mu     sync.RWMutex
	values HSVRange
	onSet  func(Channel, int)
}

// NewThresholds creates a configuration seeded with the given bounds
func NewThresholds(initial HSVRange) *Thresholds {
	t := &Thresholds{}
	for _, c := range Channels {
		t.setLocked(c, initial.Value(c))
	}
	return t
}

// Set stores a bound, clamped to the channel range, and returns the stored value
func (t *Thresholds) Set(c Channel, v int) int {
	t.mu.Lock()
	stored := t.setLocked(c, v)
	hook := t.onSet
	t.mu.Unlock()

	if hook != nil {
		hook(c, stored)
	}
	return stored
}

func (t *Thresholds) setLocked(c Channel, v int) int {
	v = c.Range().Clamp(v)
	if c < HMax {
		t.values.Lower[c] = v
	} else {
		t.values.Upper[c-HMax] = v
	}
	return v
}

// SetLower replaces the three lower bounds
func (t *Thresholds) SetLower(h, s, v int) {
	t.Set(HMin, h)
	t.Set(SMin, s)
	t.Set(VMin, v)
}

// SetUpper replaces the three upper bounds
func (t *Thresholds) SetUpper(h, s, v int) {
	t.Set(HMax, h)
	t.Set(SMax, s)
	t.Set(VMax, v)
}

// Get returns one bound
func (t *Thresholds) Get(c Channel) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.values.Value(c)
}

// Snapshot returns a copy of the bounds for one frame
func (t *Thresholds) Snapshot() HSVRange {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.values
}

// OnSet registers a callback invoked after every Set, outside the lock
func (t *Thresholds) OnSet(fn func(Channel, int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSet = fn
}
