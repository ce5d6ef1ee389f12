package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestLedgerError_IsMatchesKind(t *testing.T) {
	err := apperrors.NewLineError(apperrors.KindInvalidLine, 2, "amount must be positive")

	assert.ErrorIs(t, err, apperrors.ErrInvalidLine)
	assert.NotErrorIs(t, err, apperrors.ErrUnbalanced)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLedgerError_Categories(t *testing.T) {
	tests := []struct {
		kind     apperrors.ErrorKind
		category error
	}{
		{apperrors.KindInsufficientLines, apperrors.ErrValidation},
		{apperrors.KindUnbalanced, apperrors.ErrValidation},
		{apperrors.KindOverApplied, apperrors.ErrValidation},
		{apperrors.KindInvalidState, apperrors.ErrValidation},
		{apperrors.KindNotFound, apperrors.ErrNotFound},
		{apperrors.KindConcurrentModification, apperrors.ErrConflict},
		{apperrors.KindIntegrityViolation, apperrors.ErrInternal},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := apperrors.New(tt.kind, "boom")
			assert.ErrorIs(t, err, tt.category)
		})
	}
}

func TestLedgerError_WrappedAndJoined(t *testing.T) {
	cause := errors.New("serialization failure")
	err := fmt.Errorf("apply payment: %w", apperrors.Wrap(apperrors.KindConcurrentModification, cause, "invoice %s changed", "inv-1"))

	assert.True(t, apperrors.IsRetryable(err))
	assert.ErrorIs(t, err, cause)

	kind, ok := apperrors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindConcurrentModification, kind)

	combined := multierr.Combine(
		apperrors.New(apperrors.KindIntegrityViolation, "account a"),
		apperrors.New(apperrors.KindIntegrityViolation, "account b"),
	)
	assert.ErrorIs(t, combined, apperrors.ErrIntegrityViolation)
	assert.Len(t, multierr.Errors(combined), 2)
	assert.False(t, apperrors.IsRetryable(combined))
}

func TestLedgerError_Message(t *testing.T) {
	err := apperrors.NewLineError(apperrors.KindUnknownAccount, 1, "account %s does not exist", "acc-9")
	assert.Equal(t, "UnknownAccount (line 1): account acc-9 does not exist", err.Error())

	field := apperrors.NewFieldError(apperrors.KindZeroAmount, "allocations", "payment has no allocations")
	assert.Equal(t, "ZeroAmount: payment has no allocations", field.Error())
	assert.Equal(t, apperrors.NoIndex, field.Index)

	_, ok := apperrors.KindOf(errors.New("plain"))
	assert.False(t, ok)
}
