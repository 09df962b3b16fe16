// Package gameerr provides the structured error taxonomy of the round engine.
package gameerr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an error that did not originate in the engine.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidRuleSet marks a malformed win table at load time.
	CodeInvalidRuleSet Code = "INVALID_RULE_SET"
	// CodeUnknownChoice marks a choice name outside the active domain.
	CodeUnknownChoice Code = "UNKNOWN_CHOICE"
	// CodeInvalidConfiguration marks a bad max-round value or late reconfiguration.
	CodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	// CodeTooManyContestants marks a third registration.
	CodeTooManyContestants Code = "TOO_MANY_CONTESTANTS"
	// CodeUnsupported marks an operation the current match state does not allow.
	CodeUnsupported Code = "UNSUPPORTED"
	// CodeIncompleteRound marks resolution before both choices are set.
	CodeIncompleteRound Code = "INCOMPLETE_ROUND"
)

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrInvalidRuleSet       = &Error{Code: CodeInvalidRuleSet, Message: "invalid rule set"}
	ErrUnknownChoice        = &Error{Code: CodeUnknownChoice, Message: "unknown choice"}
	ErrInvalidConfiguration = &Error{Code: CodeInvalidConfiguration, Message: "invalid configuration"}
	ErrTooManyContestants   = &Error{Code: CodeTooManyContestants, Message: "too many contestants"}
	ErrUnsupported          = &Error{Code: CodeUnsupported, Message: "unsupported operation"}
	ErrIncompleteRound      = &Error{Code: CodeIncompleteRound, Message: "incomplete round"}
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable message
	Metadata map[string]string // Offending values, for callers that re-prompt
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(string(e.Code)))
	b.WriteString(": ")
	b.WriteString(e.Message)

	if len(e.Metadata) > 0 {
		keys := make([]string, 0, len(e.Metadata))
		for k := range e.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%q", k, e.Metadata[k])
		}
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error carrying the offending values.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first domain error in err's chain.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// Recoverable reports whether the caller can fix the input and retry the
// same call: an unknown choice needs a new name and an incomplete round
// needs the missing selection.
func Recoverable(err error) bool {
	switch CodeOf(err) {
	case CodeUnknownChoice, CodeIncompleteRound:
		return true
	default:
		return false
	}
}
