package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState      = errors.New("statemachine.empty_state")
	ErrInvalidTransition = errors.New("statemachine.incomplete_transition")
	ErrInvalidEvent      = errors.New("statemachine.empty_event")
)

// ErrNoTransitionAvailable means the table has no edge for the state and
// event, e.g. a second callback for an already exchanged sign-in flow.
type ErrNoTransitionAvailable struct {
	StateName string
	EventName string
}

func (e *ErrNoTransitionAvailable) Error() string {
	return fmt.Sprintf("statemachine: %s does not accept %s", e.StateName, e.EventName)
}

func NewErrNoTransitionAvailable(state, event string) *ErrNoTransitionAvailable {
	return &ErrNoTransitionAvailable{StateName: state, EventName: event}
}

// ErrTransitionRejected means edges exist but every guard vetoed them.
type ErrTransitionRejected struct {
	StateName string
	EventName string
}

func (e *ErrTransitionRejected) Error() string {
	return fmt.Sprintf("statemachine: guards rejected %s from %s", e.EventName, e.StateName)
}

func NewErrTransitionRejected(state, event string) *ErrTransitionRejected {
	return &ErrTransitionRejected{StateName: state, EventName: event}
}

func IsNoTransitionAvailableError(err error) bool {
	var e *ErrNoTransitionAvailable
	return errors.As(err, &e)
}

func IsTransitionRejectedError(err error) bool {
	var e *ErrTransitionRejected
	return errors.As(err, &e)
}
