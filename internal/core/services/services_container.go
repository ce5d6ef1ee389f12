package services

import (
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Options are applied after the values taken from cfg.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, txManager portsrepo.TransactionManager, options ...ServiceOption) *portssvc.ServiceContainer {
	opts := []ServiceOption{
		WithConflictRetry(cfg.ConflictMaxRetries, cfg.ConflictRetryInterval),
		WithRecurringLimits(cfg.RecurringMaxCatchUp, cfg.RecurringWorkers),
	}
	base := NewBaseService(repos, txManager, append(opts, options...)...)

	return &portssvc.ServiceContainer{
		Applier:     NewTransactionApplier(base),
		Account:     NewAccountService(base),
		Journal:     NewJournalService(base),
		Invoice:     NewInvoiceService(base),
		Banking:     NewBankingService(base),
		Expense:     NewExpenseService(base),
		Recurring:   NewRecurringService(base),
		Consistency: NewConsistencyService(base),
	}
}
