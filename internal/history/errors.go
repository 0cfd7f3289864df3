package history

import (
	"errors"
	"fmt"
)

var (
	// ErrObsolete is the materialization result for a location whose target
	// can no longer be opened, such as a scratch buffer from a closed session.
	ErrObsolete = errors.New("location is obsolete")

	// ErrExhausted matches every *ExhaustedError.
	ErrExhausted = errors.New("history exhausted")

	// ErrMoveInFlight is returned when a move is requested while another is
	// still waiting for its materialization to complete.
	ErrMoveInFlight = errors.New("a history move is already in progress")
)

// Reason says why a move stopped without landing.
type Reason int

const (
	ReasonNoMoreHistory Reason = iota
	ReasonRemainingObsolete
	ReasonTargetGone
	ReasonFallbackLimit
)

// ExhaustedError ends a move that could not land on any location.
type ExhaustedError struct {
	Dir    Direction
	Reason Reason
	URI    string // the target, for ReasonTargetGone
	Limit  int    // the fallback limit, for ReasonFallbackLimit
}

func (e *ExhaustedError) Error() string {
	var fragment string
	switch e.Reason {
	case ReasonTargetGone:
		fragment = fmt.Sprintf("%s is no longer accessible", e.URI)
	case ReasonFallbackLimit:
		fragment = fmt.Sprintf("ran into a sequence of %d obsolete locations", e.Limit)
	case ReasonRemainingObsolete:
		fragment = "the remaining locations are obsolete"
	default:
		fragment = "no more locations"
	}
	if e.Dir == Forward {
		return "Couldn't move forward: " + fragment
	}
	return "Couldn't move back: " + fragment
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}
