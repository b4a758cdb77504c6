package models

import (
	"errors"
	"fmt"
)

// ErrorType identifies the category of error that occurred.
type ErrorType string

const (
	// Construction
	ErrTypeInvalidConfiguration ErrorType = "invalid_configuration"

	// Trial execution
	ErrTypeOutOfBounds ErrorType = "out_of_bounds"

	// Catch-all
	ErrTypeInternal ErrorType = "internal_error"
)

var (
	// ErrInvalidConfiguration is returned when sizes, probabilities, step
	// limits or trial counts are out of range. It is only raised before a
	// trial starts.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrOutOfBounds is returned for any coordinate access outside the grid.
	// During a trial it means the agent policy offered an illegal move.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrTrialTerminated is returned by Step once a trial has terminated.
	ErrTrialTerminated = errors.New("trial terminated")
)

// OutOfBoundsError carries the offending coordinate.
type OutOfBoundsError struct {
	Pos    Position
	Bounds Bounds
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("position %s outside %dx%d grid", e.Pos, e.Bounds.Width, e.Bounds.Height)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// Invalidf wraps ErrInvalidConfiguration with a formatted reason.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// ClassifyError maps an error to its ErrorType.
func ClassifyError(err error) ErrorType {
	switch {
	case errors.Is(err, ErrOutOfBounds):
		return ErrTypeOutOfBounds
	case errors.Is(err, ErrInvalidConfiguration):
		return ErrTypeInvalidConfiguration
	default:
		return ErrTypeInternal
	}
}
