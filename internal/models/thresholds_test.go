package models

import (
	"image/color"
	"testing"
)

func TestDefaultRangeIncludesSaturatedYellow(t *testing.T) {
	r := DefaultHSVRange()

	got := [6]int{}
	for i, c := range Channels {
		got[i] = r.Value(c)
	}
	if got != [6]int{14, 80, 208, 44, 255, 255} {
		t.Fatalf("default bounds: got %v", got)
	}

	yellow := color.RGBA{R: 255, G: 255, B: 0, A: 255}
	if !r.Contains(yellow) {
		h, s, v := ToOpenCVHSV(yellow)
		t.Errorf("saturated yellow (hsv %d,%d,%d) should be inside the default range", h, s, v)
	}
}

func TestToOpenCVHSV(t *testing.T) {
	tests := []struct {
		name    string
		c       color.Color
		h, s, v int
	}{
		{"yellow", color.RGBA{255, 255, 0, 255}, 30, 255, 255},
		{"red", color.RGBA{255, 0, 0, 255}, 0, 255, 255},
		{"blue", color.RGBA{0, 0, 255, 255}, 120, 255, 255},
		{"white", color.RGBA{255, 255, 255, 255}, 0, 0, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, s, v := ToOpenCVHSV(tc.c)
			if h != tc.h || s != tc.s || v != tc.v {
				t.Errorf("got (%d,%d,%d), want (%d,%d,%d)", h, s, v, tc.h, tc.s, tc.v)
			}
		})
	}
}

func TestRangeExcludes(t *testing.T) {
	r := DefaultHSVRange()
	for name, c := range map[string]color.Color{
		"blue":       color.RGBA{0, 0, 255, 255},
		"dim yellow": color.RGBA{100, 100, 0, 255},
		"white":      color.RGBA{255, 255, 255, 255},
	} {
		if r.Contains(c) {
			t.Errorf("%s should be outside the default range", name)
		}
	}
}

func TestContainsHSVInclusive(t *testing.T) {
	r := DefaultHSVRange()
	if !r.ContainsHSV(14, 80, 208) {
		t.Error("lower corner should be included")
	}
	if !r.ContainsHSV(44, 255, 255) {
		t.Error("upper corner should be included")
	}
	if r.ContainsHSV(13, 80, 208) || r.ContainsHSV(45, 255, 255) {
		t.Error("values just outside the bounds should be excluded")
	}
}

func TestThresholdsSetClamps(t *testing.T) {
	th := NewThresholds(DefaultHSVRange())

	tests := []struct {
		ch   Channel
		in   int
		want int
	}{
		{HMin, 200, 179},
		{HMax, -5, 0},
		{SMin, 300, 255},
		{VMax, 128, 128},
	}

	for _, tc := range tests {
		if got := th.Set(tc.ch, tc.in); got != tc.want {
			t.Errorf("Set(%v, %d): got %d, want %d", tc.ch, tc.in, got, tc.want)
		}
		if got := th.Get(tc.ch); got != tc.want {
			t.Errorf("Get(%v): got %d, want %d", tc.ch, got, tc.want)
		}
	}
}

func TestThresholdsSnapshotIsCopy(t *testing.T) {
	th := NewThresholds(DefaultHSVRange())
	snap := th.Snapshot()

	th.SetLower(0, 0, 0)
	th.SetUpper(179, 255, 255)

	if snap != DefaultHSVRange() {
		t.Errorf("snapshot changed after Set: %+v", snap)
	}
	if got := th.Snapshot(); got.Lower != [3]int{0, 0, 0} || got.Upper != [3]int{179, 255, 255} {
		t.Errorf("setters not applied: %+v", got)
	}
}

func TestThresholdsOnSet(t *testing.T) {
	th := NewThresholds(DefaultHSVRange())

	var gotCh Channel
	var gotVal int
	th.OnSet(func(c Channel, v int) {
		gotCh, gotVal = c, v
	})

	th.Set(SMax, 999)
	if gotCh != SMax || gotVal != 255 {
		t.Errorf("OnSet: got (%v, %d), want (S_max, 255)", gotCh, gotVal)
	}
}

func TestChannelString(t *testing.T) {
	want := []string{"H_min", "S_min", "V_min", "H_max", "S_max", "V_max"}
	for i, c := range Channels {
		if c.String() != want[i] {
			t.Errorf("channel %d: got %q, want %q", i, c.String(), want[i])
		}
	}
}
