package game

import (
	"errors"
	"fmt"
)

// ErrViewportTooSmall is reported when the terminal cannot hold the board.
var ErrViewportTooSmall = errors.New("viewport too small")

// PreconditionError is a fatal startup condition. It is raised before any
// game state exists and is meant to be shown to the user as is.
type PreconditionError struct {
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// Precondition wraps err as a PreconditionError.
func Precondition(err error, format string, args ...any) error {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...), Err: err}
}

// ErrBoardTooSmall is reported when a board cannot hold a spawned piece or
// the preview panel.
var ErrBoardTooSmall = errors.New("board too small")
