package session

import (
	"errors"
	"fmt"
)

// ErrInvalidState is matched by every *InvalidStateError.
var ErrInvalidState = errors.New("invalid session state")

// InvalidStateError reports a controller operation called in a state that
// does not allow it. It is a wiring bug in the caller, never retried.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s while %s", ErrInvalidState, e.Op, e.State)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}
