package model

import "errors"

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// ErrorKind classifies a failure for the HTTP layer.
type ErrorKind int

const (
	// KindStoreFailure covers any connectivity or execution fault in the store.
	// It is the zero value so that unclassified errors default to it.
	KindStoreFailure ErrorKind = iota
	KindInvalidInput
	KindValidationFailed
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindValidationFailed:
		return "validation_failed"
	case KindNotFound:
		return "not_found"
	default:
		return "store_failure"
	}
}

// Standard client-facing messages
const (
	MsgInvalidID        = "Invalid id"
	MsgInvalidBody      = "Invalid request body"
	MsgValidationFailed = "Validation failed"
	MsgProductNotFound  = "Product not found"
	MsgServerError      = "Server error"
	MsgDeleted          = "Deleted successfully"
)

// DomainError is a classified failure. Err holds the underlying cause, which
// is never shown to clients.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Details []string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Message: message,
	}
}

// NewValidationError wraps the validator's error list.
func NewValidationError(details []string) *DomainError {
	return &DomainError{
		Kind:    KindValidationFailed,
		Message: MsgValidationFailed,
		Details: details,
	}
}

// NewStoreError marks err as a store failure.
func NewStoreError(err error) *DomainError {
	return &DomainError{
		Kind:    KindStoreFailure,
		Message: MsgServerError,
		Err:     err,
	}
}

// Common domain errors
var (
	ErrInvalidID       = NewDomainError(KindInvalidInput, MsgInvalidID)
	ErrInvalidBody     = NewDomainError(KindInvalidInput, MsgInvalidBody)
	ErrProductNotFound = NewDomainError(KindNotFound, MsgProductNotFound)
)

// KindOf reports the kind of err. Errors that carry no classification are
// store failures.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStoreFailure
}
