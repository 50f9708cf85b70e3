// Package apperr carries the error taxonomy of the calculator core. Every
// error here is recoverable: validation and empty-result errors re-prompt the
// user, evaluation errors render as a placeholder cell, collaborator errors
// leave session state untouched so the last action can be retried.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota
	KindEmptyResult
	KindEvaluation
	KindInvalidStartDate
	KindNotFound
	KindCollaborator
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindEmptyResult:
		return "empty_result"
	case KindEvaluation:
		return "evaluation"
	case KindInvalidStartDate:
		return "invalid_start_date"
	case KindNotFound:
		return "not_found"
	case KindCollaborator:
		return "collaborator"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func EmptyResult(message string) *Error {
	return &Error{Kind: KindEmptyResult, Message: message}
}

func Evaluation(message string, err error) *Error {
	return &Error{Kind: KindEvaluation, Message: message, Err: err}
}

func InvalidStartDate(message string) *Error {
	return &Error{Kind: KindInvalidStartDate, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Collaborator(message string, err error) *Error {
	return &Error{Kind: KindCollaborator, Message: message, Err: err}
}

// KindOf reports the taxonomy kind of err, or ok=false for untyped errors.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err belongs to the given taxonomy kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
