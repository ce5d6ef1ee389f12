package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock TransactionManager ---
// Fails with the queued errors and hands every other call to the real store.
type MockTransactionManager struct {
	mock.Mock
	store *memory.Store
}

var _ portsrepo.TransactionManager = (*MockTransactionManager)(nil)

func (m *MockTransactionManager) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return m.store.WithinTransaction(ctx, fn)
}

func newRetryFixture(t *testing.T, maxRetries int) (*MockTransactionManager, *memory.Store, func(...services.ServiceOption) services.BaseService) {
	t.Helper()
	store := memory.NewStore()
	txm := &MockTransactionManager{store: store}
	build := func(extra ...services.ServiceOption) services.BaseService {
		opts := append([]services.ServiceOption{
			services.WithClock(func() time.Time { return testNow }),
			services.WithConflictRetry(maxRetries, 0),
		}, extra...)
		return services.NewBaseService(store.Repositories(), txm, opts...)
	}
	return txm, store, build
}

func TestRunInTx_RetriesConcurrentModification(t *testing.T) {
	ctx := context.Background()
	txm, store, build := newRetryFixture(t, 3)
	conflict := apperrors.New(apperrors.KindConcurrentModification, "row changed underneath")
	txm.On("WithinTransaction", mock.Anything).Return(conflict).Twice()
	txm.On("WithinTransaction", mock.Anything).Return(nil).Once()

	accounts := services.NewAccountService(build())
	acc, err := accounts.CreateAccount(ctx, dto.CreateAccountRequest{Name: "Cash", AccountType: domain.AccountAsset}, testUser)
	require.NoError(t, err)

	name := "Petty Cash"
	updated, err := accounts.UpdateAccount(ctx, acc.AccountID, dto.UpdateAccountRequest{Name: &name}, testUser)
	require.NoError(t, err)
	assert.Equal(t, "Petty Cash", updated.Name)
	txm.AssertNumberOfCalls(t, "WithinTransaction", 3)

	stored, err := store.Repositories().AccountRepo.FindAccountByID(ctx, acc.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "Petty Cash", stored.Name)
}

func TestRunInTx_OtherErrorsAreNotRetried(t *testing.T) {
	ctx := context.Background()
	txm, _, build := newRetryFixture(t, 3)
	boom := errors.New("connection reset")
	txm.On("WithinTransaction", mock.Anything).Return(boom)

	applier := services.NewTransactionApplier(build())
	_, err := applier.VoidPayment(ctx, "any", testUser)
	require.ErrorIs(t, err, boom)
	txm.AssertNumberOfCalls(t, "WithinTransaction", 1)
}

func TestRunInTx_GivesUpAfterMaxRetries(t *testing.T) {
	ctx := context.Background()
	txm, _, build := newRetryFixture(t, 2)
	conflict := apperrors.New(apperrors.KindConcurrentModification, "row changed underneath")
	txm.On("WithinTransaction", mock.Anything).Return(conflict)

	applier := services.NewTransactionApplier(build())
	_, err := applier.DeleteBankTransaction(ctx, "any", testUser)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)
	assert.True(t, apperrors.IsRetryable(err))
	txm.AssertNumberOfCalls(t, "WithinTransaction", 3)
}

func TestNewBaseService_ClampsLimits(t *testing.T) {
	store := memory.NewStore()
	base := services.NewBaseService(store.Repositories(), store,
		services.WithConflictRetry(-1, 0),
		services.WithRecurringLimits(0, 0))

	ctx := context.Background()
	recurring := services.NewRecurringService(base)
	p, err := recurring.CreateProfile(ctx, dto.CreateRecurringProfileRequest{
		CategoryID:  "rent",
		Description: "Rent",
		Amount:      money("10.00"),
		Frequency:   domain.Weekly,
		StartDate:   dto.NewDate(day(2020, 1, 6)),
	}, testUser)
	require.NoError(t, err)

	// five years of weeks are due, the default cap applies
	run, err := services.NewTransactionApplier(base).GenerateRecurringExpensesForProfile(ctx, p.ProfileID, day(2024, 12, 31), testUser)
	require.NoError(t, err)
	assert.Len(t, run.Generated, 36)
}
