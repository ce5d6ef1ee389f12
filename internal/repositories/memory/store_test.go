package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func seedAccount(t *testing.T, s *Store, id string, typ domain.AccountType) {
	t.Helper()
	require.NoError(t, s.Repositories().AccountRepo.SaveAccount(context.Background(), domain.Account{
		AccountID:   id,
		Name:        id,
		AccountType: typ,
		IsActive:    true,
		Editable:    true,
		AuditFields: domain.NewAuditFields("seed", testNow),
	}))
}

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedAccount(t, s, "cash", domain.AccountAsset)

	boom := errors.New("boom")
	err := s.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		require.NoError(t, repos.AccountRepo.UpdateAccountBalances(ctx, map[string]domain.Money{"cash": 500}, "u1", testNow))
		require.NoError(t, repos.JournalRepo.SaveJournal(ctx, domain.Journal{
			JournalID: "j1",
			Lines:     []domain.JournalLine{{AccountID: "cash", Side: domain.Debit, Amount: 500}},
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	acc, err := s.Repositories().AccountRepo.FindAccountByID(ctx, "cash")
	require.NoError(t, err)
	assert.Zero(t, acc.Balance)

	_, err = s.Repositories().JournalRepo.FindJournalByID(ctx, "j1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	has, err := s.Repositories().JournalRepo.HasPostings(ctx, "cash")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestWithinTransaction_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedAccount(t, s, "cash", domain.AccountAsset)

	assert.Panics(t, func() {
		_ = s.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
			_ = repos.AccountRepo.UpdateAccountBalances(ctx, map[string]domain.Money{"cash": 1}, "u1", testNow)
			panic("unexpected")
		})
	})

	acc, err := s.Repositories().AccountRepo.FindAccountByID(ctx, "cash")
	require.NoError(t, err)
	assert.Zero(t, acc.Balance)
}

func TestWithinTransaction_CommitsAndRespectsCancellation(t *testing.T) {
	s := NewStore()
	seedAccount(t, s, "cash", domain.AccountAsset)

	err := s.WithinTransaction(context.Background(), func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		return repos.AccountRepo.UpdateAccountBalances(ctx, map[string]domain.Money{"cash": 250}, "u1", testNow)
	})
	require.NoError(t, err)

	acc, err := s.Repositories().AccountRepo.FindAccountByID(context.Background(), "cash")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(250), acc.Balance)
	assert.Equal(t, "u1", acc.LastUpdatedBy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = s.WithinTransaction(ctx, func(context.Context, portsrepo.RepositoryProvider) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestUpdateInvoice_VersionCheck(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()
	inv := domain.Invoice{InvoiceID: "inv-1", InvoiceNumber: "INV-1", Total: 1000, Status: domain.InvoiceSent, Version: 1}
	require.NoError(t, repos.InvoiceRepo.SaveInvoice(ctx, inv))

	inv.AmountPaid = 400
	inv.Version = 2
	require.NoError(t, repos.InvoiceRepo.UpdateInvoice(ctx, inv, 1))

	stale := inv
	stale.AmountPaid = 900
	stale.Version = 2
	err := repos.InvoiceRepo.UpdateInvoice(ctx, stale, 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err))

	stored, err := repos.InvoiceRepo.FindInvoiceByID(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(400), stored.AmountPaid)

	dup := domain.Invoice{InvoiceID: "inv-2", InvoiceNumber: "INV-1"}
	assert.ErrorIs(t, repos.InvoiceRepo.SaveInvoice(ctx, dup), apperrors.ErrDuplicate)
}

func TestUpdateInvoice_ParallelWritersOnSameVersion(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()
	require.NoError(t, repos.InvoiceRepo.SaveInvoice(ctx, domain.Invoice{
		InvoiceID: "inv-1", InvoiceNumber: "INV-1", Total: 1000, Status: domain.InvoiceSent, Version: 1,
	}))

	const writers = 10
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inv, err := repos.InvoiceRepo.FindInvoiceByID(ctx, "inv-1")
			if err != nil {
				errs[i] = err
				return
			}
			inv.AmountPaid = domain.Money(100 * (i + 1))
			inv.Version = 2
			errs[i] = repos.InvoiceRepo.UpdateInvoice(ctx, *inv, 1)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, apperrors.IsRetryable(err))
		assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)
	}
	assert.Equal(t, 1, successes)

	stored, err := repos.InvoiceRepo.FindInvoiceByID(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Version)
}

func TestSaveExpense_UniqueRecurringPeriod(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()
	profileID := "prof-1"
	due := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	first := domain.Expense{ExpenseID: "e1", RecurringProfileID: &profileID, RecurringDueDate: &due}
	require.NoError(t, repos.ExpenseRepo.SaveExpense(ctx, first))

	second := domain.Expense{ExpenseID: "e2", RecurringProfileID: &profileID, RecurringDueDate: &due}
	err := repos.ExpenseRepo.SaveExpense(ctx, second)
	assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)

	list, err := repos.ExpenseRepo.ListExpenses(ctx, portsrepo.ExpenseFilter{RecurringProfileID: profileID}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListJournals_CursorPagination(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedAccount(t, s, "cash", domain.AccountAsset)
	repos := s.Repositories()

	for i, id := range []string{"j1", "j2", "j3", "j4", "j5"} {
		j := domain.Journal{
			JournalID:   id,
			JournalDate: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
			Status:      domain.Posted,
			Lines:       []domain.JournalLine{{JournalID: id, AccountID: "cash", Side: domain.Debit, Amount: domain.Money(i + 1)}},
			AuditFields: domain.NewAuditFields("u", testNow),
		}
		require.NoError(t, repos.JournalRepo.SaveJournal(ctx, j))
	}

	var seen []string
	var token *string
	for pages := 0; pages < 5; pages++ {
		got, next, err := repos.JournalRepo.ListJournals(ctx, 2, token)
		require.NoError(t, err)
		for _, j := range got {
			seen = append(seen, j.JournalID)
		}
		if next == nil {
			break
		}
		token = next
	}
	assert.Equal(t, []string{"j5", "j4", "j3", "j2", "j1"}, seen)

	lines, err := repos.JournalRepo.ListLinesByAccountID(ctx, "cash")
	require.NoError(t, err)
	require.Len(t, lines, 5)
	assert.Equal(t, "j1", lines[0].JournalID)

	bad := "%%%"
	_, _, err = repos.JournalRepo.ListJournals(ctx, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
