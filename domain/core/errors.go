package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input contract errors
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmptyInput     = fmt.Errorf("%w: empty sequence", ErrInvalidInput)
	ErrOutOfUnitRange = fmt.Errorf("%w: value outside [0,1]", ErrInvalidInput)
	ErrNonPositive    = fmt.Errorf("%w: count must be positive", ErrInvalidInput)

	// Artifact errors
	ErrArtifactNotFound  = errors.New("artifact not found")
	ErrArtifactMalformed = errors.New("artifact malformed")
	ErrShapeMismatch     = fmt.Errorf("%w: draw matrix shape mismatch", ErrArtifactMalformed)
)

// Error constructors with context
func NewInvalidInputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

func NewOutOfRangeError(index int, value float64) error {
	return fmt.Errorf("%w: value %g at index %d", ErrOutOfUnitRange, value, index)
}

func NewShapeError(observations, rows int) error {
	return fmt.Errorf("%w: %d observations vs %d draw rows", ErrShapeMismatch, observations, rows)
}

// Error checking helpers
func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsArtifactError(err error) bool {
	return errors.Is(err, ErrArtifactNotFound) ||
		errors.Is(err, ErrArtifactMalformed)
}
