package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Inside a transaction every field is bound to that transaction.
type RepositoryProvider struct {
	AccountRepo    AccountRepositoryFacade
	JournalRepo    JournalRepositoryFacade
	InvoiceRepo    InvoiceRepositoryFacade
	PaymentRepo    PaymentRepositoryFacade
	CreditNoteRepo CreditNoteRepositoryFacade
	BankRepo       BankRepositoryFacade
	ExpenseRepo    ExpenseRepositoryFacade
	RecurringRepo  RecurringRepositoryFacade
}
