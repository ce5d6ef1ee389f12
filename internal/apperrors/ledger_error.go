package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why a ledger operation was refused.
type ErrorKind string

const (
	KindInsufficientLines      ErrorKind = "InsufficientLines"
	KindInvalidLine            ErrorKind = "InvalidLine"
	KindUnbalanced             ErrorKind = "Unbalanced"
	KindZeroAmount             ErrorKind = "ZeroAmount"
	KindUnknownAccount         ErrorKind = "UnknownAccount"
	KindOverApplied            ErrorKind = "OverApplied"
	KindNotFound               ErrorKind = "NotFound"
	KindConcurrentModification ErrorKind = "ConcurrentModification"
	KindIntegrityViolation     ErrorKind = "IntegrityViolation"
	// KindInvalidState is returned when the document's status does not allow the operation,
	// e.g. paying a cancelled invoice or deleting a reconciled bank transaction.
	KindInvalidState ErrorKind = "InvalidState"
)

// category maps a kind onto one of the generic sentinels so callers that only
// care about "bad input" vs "missing" vs "retry" can keep using errors.Is.
func (k ErrorKind) category() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindConcurrentModification:
		return ErrConflict
	case KindIntegrityViolation:
		return ErrInternal
	default:
		return ErrValidation
	}
}

// NoIndex marks a LedgerError that is not tied to a particular line.
const NoIndex = -1

// LedgerError is the typed error returned by every ledger operation.
type LedgerError struct {
	Kind    ErrorKind
	Message string
	Field   string
	Index   int
	Err     error
}

func (e *LedgerError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Index != NoIndex {
		fmt.Fprintf(&b, " (line %d)", e.Index)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the generic category sentinel and the underlying cause.
func (e *LedgerError) Unwrap() []error {
	errs := []error{e.Kind.category()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Is matches any LedgerError of the same kind.
func (e *LedgerError) Is(target error) bool {
	t, ok := target.(*LedgerError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Kind sentinels for errors.Is checks.
var (
	ErrInsufficientLines      = &LedgerError{Kind: KindInsufficientLines, Index: NoIndex}
	ErrInvalidLine            = &LedgerError{Kind: KindInvalidLine, Index: NoIndex}
	ErrUnbalanced             = &LedgerError{Kind: KindUnbalanced, Index: NoIndex}
	ErrZeroAmount             = &LedgerError{Kind: KindZeroAmount, Index: NoIndex}
	ErrUnknownAccount         = &LedgerError{Kind: KindUnknownAccount, Index: NoIndex}
	ErrOverApplied            = &LedgerError{Kind: KindOverApplied, Index: NoIndex}
	ErrLedgerNotFound         = &LedgerError{Kind: KindNotFound, Index: NoIndex}
	ErrConcurrentModification = &LedgerError{Kind: KindConcurrentModification, Index: NoIndex}
	ErrIntegrityViolation     = &LedgerError{Kind: KindIntegrityViolation, Index: NoIndex}
	ErrInvalidState           = &LedgerError{Kind: KindInvalidState, Index: NoIndex}
)

// New builds a LedgerError that is not bound to a line or field.
func New(kind ErrorKind, format string, args ...any) *LedgerError {
	return &LedgerError{Kind: kind, Message: fmt.Sprintf(format, args...), Index: NoIndex}
}

// NewLineError builds a LedgerError pointing at the offending line (zero based).
func NewLineError(kind ErrorKind, index int, format string, args ...any) *LedgerError {
	return &LedgerError{Kind: kind, Message: fmt.Sprintf(format, args...), Index: index}
}

// NewFieldError builds a LedgerError pointing at a request field.
func NewFieldError(kind ErrorKind, field string, format string, args ...any) *LedgerError {
	return &LedgerError{Kind: kind, Message: fmt.Sprintf(format, args...), Field: field, Index: NoIndex}
}

// Wrap attaches a kind to an underlying error.
func Wrap(kind ErrorKind, err error, format string, args ...any) *LedgerError {
	return &LedgerError{Kind: kind, Message: fmt.Sprintf(format, args...), Index: NoIndex, Err: err}
}

// KindOf returns the kind of the first LedgerError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Kind, true
	}
	return "", false
}

// IsRetryable reports whether the operation can be retried after re-reading state.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
