package sdk

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common engine error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrSchemaViolation indicates a document failed structural, type, range,
	// or enum validation. The wrapped error is always a ViolationList with
	// every defect found, not just the first.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrDomainValue indicates a value that is schema-legal but semantically
	// invalid, such as a zero-duration resource estimate or an out-of-range
	// triage input.
	ErrDomainValue = errors.New("value outside domain")

	// ErrInvalidTimestamp indicates an unparsable or implausible date, such
	// as an evidence creation time in the future beyond skew tolerance.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// Error kinds categorize errors by their type.
const (
	// KindSchema represents structural, type, range, or enum failures.
	KindSchema = "schema_violation"

	// KindDomain represents semantically invalid but schema-legal values.
	KindDomain = "domain_error"

	// KindTimestamp represents unparsable or implausible dates.
	KindTimestamp = "invalid_timestamp"

	// KindConfiguration represents invalid caller-supplied parameters
	// (budgets, policies, expected postures).
	KindConfiguration = "configuration"

	// KindInternal represents internal engine errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with the
// operation that failed and the category of failure.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &sdk.Error{
//		Op:   "triage.Classify",
//		Kind: sdk.KindDomain,
//		Err:  sdk.ErrDomainValue,
//	}
type Error struct {
	// Op is the operation that failed (e.g., "note.Parse", "evoi.Prioritize").
	Op string

	// Kind categorizes the error (e.g., KindSchema, KindDomain).
	Kind string

	// Err is the underlying error that caused this error.
	Err error
}

// Error implements the error interface, returning a formatted message that
// includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("lousa: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("lousa: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on the
// underlying error or another Error's kind.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// NewSchemaError creates a new Error with KindSchema.
func NewSchemaError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindSchema, Err: err}
}

// NewDomainError creates a new Error with KindDomain.
func NewDomainError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindDomain, Err: err}
}

// NewTimestampError creates a new Error with KindTimestamp.
func NewTimestampError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindTimestamp, Err: err}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfiguration, Err: err}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindInternal, Err: err}
}

// Violation is a single path-qualified validation defect.
type Violation struct {
	// Path locates the offending value inside the document, using
	// slash-separated segments (e.g., "/risk_note/triage/severity").
	Path string

	// Message describes what is wrong with the value at Path.
	Message string
}

// String returns the violation in "path: message" form.
func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// ViolationList collects every validation defect found in a single pass.
// A single invocation surfaces the complete defect set; callers must never
// truncate it to the first entry.
type ViolationList []Violation

// Add appends a violation to the list.
func (l *ViolationList) Add(path, format string, args ...any) {
	*l = append(*l, Violation{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Error implements the error interface, listing every violation.
func (l ViolationList) Error() string {
	if len(l) == 0 {
		return "no violations"
	}
	msgs := make([]string, len(l))
	for i, v := range l {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("%d violation(s): %s", len(l), strings.Join(msgs, "; "))
}

// Is reports a match against ErrSchemaViolation so that callers can test
// for validation failure without inspecting the concrete type.
func (l ViolationList) Is(target error) bool {
	return target == ErrSchemaViolation
}

// Err returns the list as an error, or nil if the list is empty.
func (l ViolationList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
