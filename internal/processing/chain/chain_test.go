package chain

import (
	"context"
	"errors"
	"testing"

	"gocv.io/x/gocv"

	"led-shapes/internal/opencv/safe"
)

type recordingStep struct {
	name  string
	calls *[]string
	err   error
}

func (s recordingStep) Name() string { return s.name }

func (s recordingStep) Apply(ctx context.Context, input *safe.Mat, params Params) (*safe.Mat, error) {
	*s.calls = append(*s.calls, s.name)
	if s.err != nil {
		return nil, s.err
	}
	return input.Clone()
}

func newInput(t *testing.T) *safe.Mat {
	t.Helper()
	m, err := safe.NewMat(4, 4, gocv.MatTypeCV8UC1, "input")
	if err != nil {
		t.Fatalf("NewMat: %v", err)
	}
	return m
}

func TestExecuteRunsStepsInOrder(t *testing.T) {
	var calls []string
	c := NewProcessingChain(
		recordingStep{name: "close", calls: &calls},
		recordingStep{name: "open", calls: &calls},
		recordingStep{name: "erode", calls: &calls},
	)

	in := newInput(t)
	defer in.Close()

	out, err := c.Execute(context.Background(), in, Params{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	defer out.Close()

	want := []string{"close", "open", "erode"}
	if len(calls) != len(want) {
		t.Fatalf("calls: got %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("step %d: got %s, want %s", i, calls[i], want[i])
		}
	}
	if !in.IsValid() {
		t.Error("input must not be closed by the chain")
	}
	if out == in {
		t.Error("output must be a distinct Mat")
	}
}

func TestExecuteStopsOnError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	c := NewProcessingChain(
		recordingStep{name: "first", calls: &calls},
		recordingStep{name: "second", calls: &calls, err: boom},
		recordingStep{name: "third", calls: &calls},
	)

	in := newInput(t)
	defer in.Close()

	_, err := c.Execute(context.Background(), in, Params{})
	if !errors.Is(err, boom) {
		t.Fatalf("Execute error: got %v, want %v", err, boom)
	}
	if len(calls) != 2 {
		t.Errorf("calls after failure: got %v", calls)
	}
}

func TestExecuteHonoursCancellation(t *testing.T) {
	var calls []string
	c := NewProcessingChain(recordingStep{name: "only", calls: &calls})

	in := newInput(t)
	defer in.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Execute(ctx, in, Params{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Execute error: got %v, want context.Canceled", err)
	}
	if len(calls) != 0 {
		t.Errorf("no step should run after cancellation, got %v", calls)
	}
}

func TestGetStepNames(t *testing.T) {
	var calls []string
	c := NewProcessingChain(recordingStep{name: "a", calls: &calls}, recordingStep{name: "b", calls: &calls})

	if names := c.GetStepNames(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("GetStepNames: got %v", names)
	}
}
