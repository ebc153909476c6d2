// Package errors defines the domain error type surfaced at service boundaries.
package errors

import (
	"fmt"
	"strings"
)

// Kind classifies a DomainError for transport mapping.
type Kind int

const (
	KindValidation Kind = iota
	KindState
	KindNotFound
	KindPersistence
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindState:
		return "state"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	default:
		return "internal"
	}
}

// DomainError carries a stable code plus optional operation context.
// Two DomainErrors match under errors.Is when their codes are equal.
type DomainError struct {
	Code    string
	Message string
	Kind    Kind
	Op      string
	Err     error
}

func (e *DomainError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DomainError) Unwrap() error { return e.Err }

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// With returns a copy of e annotated with an operation and a cause.
func (e *DomainError) With(op string, err error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Kind:    e.Kind,
		Op:      op,
		Err:     err,
	}
}

// Withf returns a copy of e with a more specific message.
func (e *DomainError) Withf(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Kind:    e.Kind,
	}
}

// Persistence wraps a storage error with the operation and the identifiers
// involved. Only ids belong here; never pass profile field values.
func Persistence(op string, err error, ids ...string) *DomainError {
	msg := ErrPersistenceFailure.Message
	if len(ids) > 0 {
		msg = fmt.Sprintf("%s [%s]", msg, strings.Join(ids, ","))
	}
	return &DomainError{
		Code:    ErrPersistenceFailure.Code,
		Message: msg,
		Kind:    KindPersistence,
		Op:      op,
		Err:     err,
	}
}

// KindOf returns the kind of err, or KindInternal when err is not a DomainError.
func KindOf(err error) Kind {
	var de *DomainError
	if As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
