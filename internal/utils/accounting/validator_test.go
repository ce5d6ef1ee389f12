package accounting_test

import (
	"math/rand"
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"cash":     {AccountID: "cash", AccountType: domain.AccountAsset, IsActive: true},
		"revenue":  {AccountID: "revenue", AccountType: domain.AccountRevenue, IsActive: true},
		"rent":     {AccountID: "rent", AccountType: domain.AccountExpense, IsActive: true},
		"archived": {AccountID: "archived", AccountType: domain.AccountAsset, IsActive: false},
	}
}

func debit(acc, amount string) domain.PostingLine {
	return domain.PostingLine{AccountID: acc, Debit: domain.MustParseMoney(amount)}
}

func credit(acc, amount string) domain.PostingLine {
	return domain.PostingLine{AccountID: acc, Credit: domain.MustParseMoney(amount)}
}

func TestValidateJournalLines(t *testing.T) {
	tests := []struct {
		name      string
		lines     []domain.PostingLine
		wantKind  apperrors.ErrorKind
		wantIndex int
	}{
		{
			name:  "balanced entry accepted",
			lines: []domain.PostingLine{debit("cash", "100.00"), credit("revenue", "100.00")},
		},
		{
			name:      "single line",
			lines:     []domain.PostingLine{debit("cash", "100.00")},
			wantKind:  apperrors.KindInsufficientLines,
			wantIndex: apperrors.NoIndex,
		},
		{
			name:      "no lines",
			wantKind:  apperrors.KindInsufficientLines,
			wantIndex: apperrors.NoIndex,
		},
		{
			name: "both sides on one line",
			lines: []domain.PostingLine{
				debit("cash", "10.00"),
				{AccountID: "revenue", Debit: 500, Credit: 500},
			},
			wantKind:  apperrors.KindInvalidLine,
			wantIndex: 1,
		},
		{
			name:      "zero line",
			lines:     []domain.PostingLine{{AccountID: "cash"}, credit("revenue", "1.00")},
			wantKind:  apperrors.KindInvalidLine,
			wantIndex: 0,
		},
		{
			name:      "negative amount",
			lines:     []domain.PostingLine{debit("cash", "1.00"), {AccountID: "revenue", Credit: -100}},
			wantKind:  apperrors.KindInvalidLine,
			wantIndex: 1,
		},
		{
			name:      "unbalanced by one cent",
			lines:     []domain.PostingLine{debit("cash", "100.00"), credit("revenue", "99.99")},
			wantKind:  apperrors.KindUnbalanced,
			wantIndex: apperrors.NoIndex,
		},
		{
			name:      "unknown account",
			lines:     []domain.PostingLine{debit("cash", "5.00"), credit("nope", "5.00")},
			wantKind:  apperrors.KindUnknownAccount,
			wantIndex: 1,
		},
		{
			name:      "archived account",
			lines:     []domain.PostingLine{debit("archived", "5.00"), credit("revenue", "5.00")},
			wantKind:  apperrors.KindUnknownAccount,
			wantIndex: 0,
		},
		{
			name:      "unbalanced wins over unknown account",
			lines:     []domain.PostingLine{debit("nope", "5.00"), credit("revenue", "4.00")},
			wantKind:  apperrors.KindUnbalanced,
			wantIndex: apperrors.NoIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateJournalLines(tt.lines, testAccounts())
			if tt.wantKind == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var le *apperrors.LedgerError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.wantKind, le.Kind)
			assert.Equal(t, tt.wantIndex, le.Index)
		})
	}
}

// Every accepted journal balances exactly, for randomly generated inputs.
func TestValidateJournalLines_GeneratedEntries(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	accounts := testAccounts()
	ids := []string{"cash", "revenue", "rent"}

	accepted := 0
	for i := 0; i < 2000; i++ {
		n := rng.Intn(6)
		lines := make([]domain.PostingLine, 0, n+1)
		var debits domain.Money
		for j := 0; j < n; j++ {
			amt := domain.Money(rng.Int63n(100000) - 10)
			l := domain.PostingLine{AccountID: ids[rng.Intn(len(ids))]}
			if rng.Intn(2) == 0 {
				l.Debit = amt
				debits += amt
			} else {
				l.Credit = amt
				debits -= amt
			}
			lines = append(lines, l)
		}
		// Half the time append a balancing line.
		if rng.Intn(2) == 0 && debits != 0 {
			l := domain.PostingLine{AccountID: ids[rng.Intn(len(ids))]}
			if debits > 0 {
				l.Credit = debits
			} else {
				l.Debit = -debits
			}
			lines = append(lines, l)
		}

		if err := accounting.ValidateJournalLines(lines, accounts); err != nil {
			continue
		}
		accepted++
		var d, c domain.Money
		for _, l := range lines {
			d += l.Debit
			c += l.Credit
		}
		require.Equal(t, d, c, "accepted journal %d does not balance", i)
		require.Positive(t, int64(d))
	}
	assert.Positive(t, accepted)
}

func TestAccountIDs(t *testing.T) {
	ids := accounting.AccountIDs([]domain.PostingLine{debit("cash", "1"), credit("revenue", "0.5"), credit("cash", "0.5")})
	assert.Equal(t, []string{"cash", "revenue"}, ids)
}
