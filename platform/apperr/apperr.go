// Package apperr provides standardized domain error types for the application.
// Domain services return these typed errors, and the HTTP layer middleware
// automatically maps them to appropriate HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindSourceUnavailable indicates the catalog source failed; recovered
	// locally via the built-in sample fallback and never surfaced to callers.
	KindSourceUnavailable
	// KindClassificationIndeterminate indicates the category classifier failed
	// or returned an unknown key; recovered locally as "no category".
	KindClassificationIndeterminate
	// KindRankingIndeterminate indicates the relevance ranking failed or
	// selected nothing usable; recovered locally via the first-N fallback.
	KindRankingIndeterminate
	// KindNoCandidates indicates search and its fallback both yielded nothing.
	KindNoCandidates
	// KindConfigurationInvalid indicates a discovery session started without
	// its required inputs. Fatal, no retry.
	KindConfigurationInvalid
	// KindUpstreamGenerationFailure indicates placeholder generation failed
	// with no further fallback available. Fatal.
	KindUpstreamGenerationFailure
	// KindNotFound indicates a resource was not found.
	KindNotFound
	// KindValidation indicates invalid input data.
	KindValidation
	// KindUnauthorized indicates the caller is not a trusted agent.
	KindUnauthorized
	// KindInternal indicates an unexpected internal error.
	KindInternal
)

// Error is a domain error with a typed Kind for HTTP mapping.
type Error struct {
	Kind    Kind
	Message string
	Op      string      // Operation that failed (optional)
	Err     error       // Underlying error (optional)
	Details interface{} // Additional details for response (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Recoverable reports whether this error kind is absorbed at its stage
// boundary instead of terminating the discovery session.
func (e *Error) Recoverable() bool {
	switch e.Kind {
	case KindSourceUnavailable, KindClassificationIndeterminate,
		KindRankingIndeterminate, KindNoCandidates:
		return true
	default:
		return false
	}
}

// HTTPStatus returns the appropriate HTTP status code for this error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindConfigurationInvalid:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUpstreamGenerationFailure:
		return http.StatusBadGateway
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// New creates a new domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp returns a copy of the error with the operation set.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// Convenience constructors for common error types.

// SourceUnavailable creates a catalog source failure error.
func SourceUnavailable(message string, err error) *Error {
	return Wrap(KindSourceUnavailable, message, err)
}

// ClassificationIndeterminate creates a classifier failure error.
func ClassificationIndeterminate(message string, err error) *Error {
	return Wrap(KindClassificationIndeterminate, message, err)
}

// RankingIndeterminate creates a ranking failure error.
func RankingIndeterminate(message string, err error) *Error {
	return Wrap(KindRankingIndeterminate, message, err)
}

// NoCandidates creates an empty-search error.
func NoCandidates(message string) *Error {
	return New(KindNoCandidates, message)
}

// ConfigurationInvalid creates a fatal session configuration error.
func ConfigurationInvalid(message string) *Error {
	return New(KindConfigurationInvalid, message)
}

// UpstreamGenerationFailure creates a fatal placeholder generation error.
func UpstreamGenerationFailure(message string, err error) *Error {
	return Wrap(KindUpstreamGenerationFailure, message, err)
}

// NotFound creates a not found error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Unauthorized creates an unauthorized error.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// Internal creates an internal server error.
func Internal(message string) *Error {
	return New(KindInternal, message)
}

// GetKind extracts the error kind from an error.
// Returns KindUnknown if the error is not an *Error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err is an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
