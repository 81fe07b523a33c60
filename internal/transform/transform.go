package transform

import (
	"fmt"

	"github.com/rgehrsitz/carecalc/internal/config"
)

// ScenarioTransform defines the interface for all scenario transformations.
// Transforms never modify their input; Apply returns a new scenario.
type ScenarioTransform interface {
	// Apply transforms a base scenario and returns a new modified scenario.
	Apply(base *config.ScenarioInput) (*config.ScenarioInput, error)

	// Name returns a short identifier for this transform (e.g., "extend_years").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base *config.ScenarioInput) error
}

// ApplyTransforms applies a sequence of transforms to a base scenario.
// Each transform receives the output of the previous one.
func ApplyTransforms(base *config.ScenarioInput, transforms []ScenarioTransform) (*config.ScenarioInput, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	current := base.DeepCopy()
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
