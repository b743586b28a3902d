// Package core carries the error-code vocabulary shared by every other
// package in this module, grounded on spec.md §7's error-handling table:
// each recoverable Kind gets its own code, and Internal is the one kind
// meant to reach a caller as a panic rather than a returned error.
package core

import (
	"errors"
	"fmt"
	"os"
)

// Error codes, one per spec.md §7 Kind.
const (
	NOERROR int = 0
	// EUNRESOLVED is UnresolvedReference: a CellUse names a CellDef the
	// symbol table has no entry for.
	EUNRESOLVED int = 120
	// EBOUNDARY is BoundaryCross: a plow rectangle fell outside the
	// target CellDef's bounding box.
	EBOUNDARY int = 121
	// ELOCKED is LockedCell: an attempted mutation of a read-only def.
	ELOCKED int = 122
	// ECANCELLED is Cancelled: the interrupt flag was set mid-operation.
	ECANCELLED int = 123
	// EDRC is DesignRuleViolation: recorded non-fatally via a Sink, not
	// normally surfaced as a Go error, but available for callers that
	// want to turn a violation into one.
	EDRC int = 124
	// EINTERNAL is Internal: a corner-stitch or maximal-strip invariant
	// was violated. Callers encountering this code should treat it as a
	// bug, not a recoverable condition — spec.md §7 says only this kind
	// aborts the process.
	EINTERNAL int = 125
)

func errorText(ecode int) string {
	switch ecode {
	case NOERROR:
		return "OK"
	case EUNRESOLVED:
		return "unresolved cell reference"
	case EBOUNDARY:
		return "boundary cross"
	case ELOCKED:
		return "cell is locked"
	case ECANCELLED:
		return "cancelled"
	case EDRC:
		return "design rule violation"
	case EINTERNAL:
		return "internal error"
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	return fmt.Sprintf("[%d] %v", e.code, e.error)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

var _ AppError = coreError{}

// ErrorWithCode adds an error code to err's error chain.
// Unlike pkg/errors, ErrorWithCode will wrap nil error.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, errorText(code)}
}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
// If err is nil, a plain error carrying the standard text for code is
// wrapped instead.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// If no message is found, it checks StatusCode and returns that message.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}

// UserError prints err to stderr, using its user message if it carries
// one.
func UserError(err error) {
	if e, ok := err.(AppError); ok {
		fmt.Fprintf(os.Stderr, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}
