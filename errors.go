package main

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes categorize failures so callers can branch on kind
// instead of matching message text.
const (
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EINTERNAL = "internal"
)

// Error is a domain error with a machine-readable code and a
// human-readable message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf builds an Error with the given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of err, EINTERNAL for non-domain errors,
// and the empty string for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ue *UnknownElementError
	if errors.As(err, &ue) {
		return EINVALID
	}
	return EINTERNAL
}

// ErrorMessage returns the message of err, or err.Error() for
// non-domain errors.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// UnknownElementError reports a fetch for a name that is not in the
// endpoint table. Its message enumerates every known element grouped
// by section so a caller can correct the name without a second round
// trip. It is surfaced with the EINVALID code.
type UnknownElementError struct {
	Element  string
	Sections []Section
}

func (e *UnknownElementError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: unknown element %q; known elements by section:", EINVALID, e.Element)
	for _, s := range e.Sections {
		fmt.Fprintf(&b, "\n  %s: %s", s.Name, strings.Join(s.Elements, ", "))
	}
	return b.String()
}
