package controller

import (
	"errors"
	"fmt"

	"rocketsim/state/rocket"
)

// ErrorKind classifies command failures.
type ErrorKind int

const (
	Unexpected ErrorKind = iota
	InvalidCommand
	InvalidStage
	PreconditionNotMet
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidCommand:
		return "InvalidCommand"
	case InvalidStage:
		return "InvalidStage"
	case PreconditionNotMet:
		return "PreconditionNotMet"
	default:
		return "Unexpected"
	}
}

// Error is a failed command. Command is set for InvalidCommand, Current and
// Required for InvalidStage, Message for PreconditionNotMet.
type Error struct {
	Kind     ErrorKind
	Command  string
	Current  rocket.LaunchStage
	Required rocket.LaunchStage
	Message  string
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidCommand:
		return fmt.Sprintf("Invalid command: %s", e.Command)
	case InvalidStage:
		return fmt.Sprintf("Invalid stage: Current stage is %s, but %s is required.", e.Current, e.Required)
	case PreconditionNotMet:
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidCommand(command string) error {
	return &Error{Kind: InvalidCommand, Command: command}
}

func invalidStage(current, required rocket.LaunchStage) error {
	return &Error{Kind: InvalidStage, Current: current, Required: required}
}

func preconditionNotMet(message string) error {
	return &Error{Kind: PreconditionNotMet, Message: message}
}

// KindOf returns the kind of err. Anything that is not an *Error is Unexpected.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}
