// Package memory is an in-process implementation of the repository ports.
// It backs the service tests and the STORE_DRIVER=memory development mode.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

// Store keeps every table in maps guarded by one lock. A transaction holds the
// write lock from start to finish, so writers are fully serialized.
type Store struct {
	mu sync.RWMutex
	st *state
}

// state never has its values mutated in place: writers store fresh copies,
// which keeps snapshot() a shallow copy of each map.
type state struct {
	accounts        map[string]domain.Account
	journals        map[string]domain.Journal
	postingOrder    []string
	invoices        map[string]domain.Invoice
	payments        map[string]domain.Payment
	creditNotes     map[string]domain.CreditNote
	bankAccounts    map[string]domain.BankAccount
	bankTxns        map[string]domain.BankTransaction
	expenses        map[string]domain.Expense
	expensePayments map[string]domain.ExpensePayment
	profiles        map[string]domain.RecurringExpenseProfile
}

func newState() *state {
	return &state{
		accounts:        make(map[string]domain.Account),
		journals:        make(map[string]domain.Journal),
		invoices:        make(map[string]domain.Invoice),
		payments:        make(map[string]domain.Payment),
		creditNotes:     make(map[string]domain.CreditNote),
		bankAccounts:    make(map[string]domain.BankAccount),
		bankTxns:        make(map[string]domain.BankTransaction),
		expenses:        make(map[string]domain.Expense),
		expensePayments: make(map[string]domain.ExpensePayment),
		profiles:        make(map[string]domain.RecurringExpenseProfile),
	}
}

func (s *state) snapshot() *state {
	return &state{
		accounts:        maps.Clone(s.accounts),
		journals:        maps.Clone(s.journals),
		postingOrder:    slices.Clone(s.postingOrder),
		invoices:        maps.Clone(s.invoices),
		payments:        maps.Clone(s.payments),
		creditNotes:     maps.Clone(s.creditNotes),
		bankAccounts:    maps.Clone(s.bankAccounts),
		bankTxns:        maps.Clone(s.bankTxns),
		expenses:        maps.Clone(s.expenses),
		expensePayments: maps.Clone(s.expensePayments),
		profiles:        maps.Clone(s.profiles),
	}
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repositories returns non-transactional repositories; each call locks on its own.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return provider(&repo{store: s})
}

// WithinTransaction runs fn with the store locked and restores the previous
// state if fn fails or panics.
func (s *Store) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.st.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.st = saved
			panic(p)
		}
		if err != nil {
			s.st = saved
		}
	}()

	if err = fn(ctx, provider(&repo{store: s, inTx: true})); err != nil {
		return err
	}
	return ctx.Err()
}

func provider(r *repo) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    r,
		JournalRepo:    r,
		InvoiceRepo:    r,
		PaymentRepo:    r,
		CreditNoteRepo: r,
		BankRepo:       r,
		ExpenseRepo:    r,
		RecurringRepo:  r,
	}
}

// repo implements every repository facade over the shared state.
type repo struct {
	store *Store
	inTx  bool
}

func (r *repo) read(fn func(st *state) error) error {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	return fn(r.store.st)
}

func (r *repo) write(fn func(st *state) error) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	return fn(r.store.st)
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

var (
	_ portsrepo.AccountRepositoryFacade    = (*repo)(nil)
	_ portsrepo.JournalRepositoryFacade    = (*repo)(nil)
	_ portsrepo.InvoiceRepositoryFacade    = (*repo)(nil)
	_ portsrepo.PaymentRepositoryFacade    = (*repo)(nil)
	_ portsrepo.CreditNoteRepositoryFacade = (*repo)(nil)
	_ portsrepo.BankRepositoryFacade       = (*repo)(nil)
	_ portsrepo.ExpenseRepositoryFacade    = (*repo)(nil)
	_ portsrepo.RecurringRepositoryFacade  = (*repo)(nil)
	_ portsrepo.TransactionManager         = (*Store)(nil)
)
