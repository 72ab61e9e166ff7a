// Package failure defines the error kinds a conversion can fail with.
package failure

import (
	"errors"
	"fmt"
)

// Kind names one class of conversion failure.
type Kind string

const (
	InputFormat       Kind = "InputFormatError"
	MalformedGraph    Kind = "MalformedGraph"
	MultipleRoots     Kind = "MultipleRoots"
	CyclicGraph       Kind = "CyclicGraph"
	InvalidRootJoint  Kind = "InvalidRootJoint"
	InvalidChildJoint Kind = "InvalidChildJoint"
	UnboundedSlider   Kind = "UnboundedSlider"
	UnknownJointKind  Kind = "UnknownJointKind"
	MissingAxisData   Kind = "MissingAxisData"
	MissingPart       Kind = "MissingPart"
	SchemaViolation   Kind = "SchemaViolation"
)

// NoLink marks a failure that is not tied to a single link.
const NoLink = -1 << 31

// Error is a fatal conversion failure.
type Error struct {
	Kind   Kind
	LinkID int // NoLink when the failure concerns the whole graph
	Cause  string
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.LinkID != NoLink {
		msg += fmt.Sprintf(" (link %d)", e.LinkID)
	}
	if e.Cause != "" {
		msg += ": " + e.Cause
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a failure for one link.
func New(kind Kind, linkID int, format string, args ...any) *Error {
	return &Error{Kind: kind, LinkID: linkID, Cause: fmt.Sprintf(format, args...)}
}

// Graph returns a failure that concerns the link set as a whole.
func Graph(kind Kind, format string, args ...any) *Error {
	return New(kind, NoLink, format, args...)
}

// Wrap attaches a kind to an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, LinkID: NoLink, Cause: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first failure in err's chain.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// LinkOf returns the offending link id, if the failure names one.
func LinkOf(err error) (int, bool) {
	var fe *Error
	if errors.As(err, &fe) && fe.LinkID != NoLink {
		return fe.LinkID, true
	}
	return 0, false
}
