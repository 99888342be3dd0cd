package chain

import (
	"context"
	"fmt"

	"led-shapes/internal/models"
	"led-shapes/internal/opencv/safe"
)

// Params carries the per-frame inputs every step may read
type Params struct {
	Range models.HSVRange
}

type ProcessingStep interface {
	Apply(ctx context.Context, input *safe.Mat, params Params) (*safe.Mat, error)
	Name() string
}

type ProcessingChain struct {
	steps []ProcessingStep
}

func NewProcessingChain(steps ...ProcessingStep) *ProcessingChain {
	return &ProcessingChain{
		steps: steps,
	}
}

// Execute runs the steps in order. Intermediate results are released as soon
// as the next step has consumed them; input is never closed.
func (pc *ProcessingChain) Execute(ctx context.Context, input *safe.Mat, params Params) (*safe.Mat, error) {
	current := input

	release := func() {
		if current != input {
			current.Close()
		}
	}

	for _, step := range pc.steps {
		select {
		case <-ctx.Done():
			release()
			return nil, ctx.Err()
		default:
		}

		result, err := step.Apply(ctx, current, params)
		if err != nil {
			release()
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}

		release()
		current = result
	}

	if current == input {
		return input.Clone()
	}
	return current, nil
}

func (pc *ProcessingChain) GetStepNames() []string {
	names := make([]string, len(pc.steps))
	for i, step := range pc.steps {
		names[i] = step.Name()
	}
	return names
}
