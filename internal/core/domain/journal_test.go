package domain_test

import (
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSide_Opposite(t *testing.T) {
	assert.Equal(t, domain.Credit, domain.Debit.Opposite())
	assert.Equal(t, domain.Debit, domain.Credit.Opposite())
}

func TestPostingLine_Side(t *testing.T) {
	assert.Equal(t, domain.Debit, domain.PostingLine{Debit: 100}.Side())
	assert.Equal(t, domain.Credit, domain.PostingLine{Credit: 100}.Side())
}
