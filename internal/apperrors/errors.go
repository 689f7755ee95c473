package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned when an infrastructure failure is hidden from the caller.
var ErrInternal = errors.New("internal error")

// Ledger error kinds.
var (
	ErrInvalidJournalStructure    = errors.New("invalid journal structure")
	ErrEmptyLine                  = errors.New("entry line has zero amount")
	ErrUnbalancedJournal          = errors.New("journal debits and credits do not balance")
	ErrJournalLocked              = errors.New("journal is locked")
	ErrPeriodClosed               = errors.New("posting period is closed")
	ErrBatchHasUnbalancedJournals = errors.New("batch has unbalanced journals")
	ErrEmptyBatch                 = errors.New("batch has no journals")
	ErrAmbiguousMapping           = errors.New("label matches more than one account")
	ErrDuplicateSequenceNumber    = errors.New("sequence number already issued")
	ErrInvalidStateTransition     = errors.New("invalid state transition")
	ErrBatchApprovalRequired      = errors.New("batch approval required")
)

// LedgerError carries an error kind together with the id of the entity that caused it.
type LedgerError struct {
	Kind     error
	EntityID string
	Detail   string
	// Related lists further offending entities, e.g. the unbalanced journals of a batch.
	Related []string
}

func (e *LedgerError) Error() string {
	msg := e.Kind.Error()
	if e.EntityID != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.EntityID)
	}
	if e.Detail != "" {
		msg = msg + ": " + e.Detail
	}
	if len(e.Related) > 0 {
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(e.Related, ", "))
	}
	return msg
}

// Unwrap lets errors.Is match the kind.
func (e *LedgerError) Unwrap() error {
	return e.Kind
}

// NewLedgerError builds a LedgerError for kind and entityID with a formatted detail.
func NewLedgerError(kind error, entityID string, format string, args ...any) *LedgerError {
	detail := format
	if len(args) > 0 {
		detail = fmt.Sprintf(format, args...)
	}
	return &LedgerError{Kind: kind, EntityID: entityID, Detail: detail}
}

// EntityIDOf returns the offending entity id if err is (or wraps) a LedgerError.
func EntityIDOf(err error) string {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.EntityID
	}
	return ""
}

// RelatedOf returns the related entity ids if err is (or wraps) a LedgerError.
func RelatedOf(err error) []string {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Related
	}
	return nil
}

// AppError wraps infrastructure failures with a status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
