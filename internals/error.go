package internals

import (
	"errors"
	"fmt"
)

// kinds of failure a run can end with, match them with errors.Is
var (
	ErrUnmatchedEnd            = errors.New("unmatched end")
	ErrUnmatchedOpener         = errors.New("block never closed")
	ErrMalformedExpression     = errors.New("malformed expression")
	ErrMissingOperand          = errors.New("missing operand")
	ErrMalformedCondition      = errors.New("malformed condition")
	ErrUndefinedVariable       = errors.New("undefined variable")
	ErrInvalidAssignmentTarget = errors.New("invalid assignment target")
	ErrStepLimit               = errors.New("step limit exceeded")
)

// Error ties an error kind to the source line it happened on.
type Error struct {
	Kind   error
	Line   int
	Detail string
}

func NewError(kind error, line int, format string, a ...any) *Error {
	return &Error{
		Kind:   kind,
		Line:   line,
		Detail: fmt.Sprintf(format, a...),
	}
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// This file handles an error collector obj

type ErrorCollector struct {
	Errors []error
}

func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		Errors: make([]error, 0),
	}
}

func (ec *ErrorCollector) Add(err error) {
	ec.Errors = append(ec.Errors, err)
}

func (ec *ErrorCollector) Addf(format string, a ...any) {
	ec.Add(fmt.Errorf(format, a...))
}

func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.Errors) > 0
}

// Err joins everything collected so far, nil when nothing was added.
func (ec *ErrorCollector) Err() error {
	return errors.Join(ec.Errors...)
}
