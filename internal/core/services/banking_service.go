package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/google/uuid"
)

// bankingService manages bank accounts. current_balance is owned by the applier.
type bankingService struct {
	BaseService
}

// NewBankingService creates a new banking service.
func NewBankingService(base BaseService) portssvc.BankingSvcFacade {
	return &bankingService{BaseService: base}
}

var _ portssvc.BankingSvcFacade = (*bankingService)(nil)

func (s *bankingService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		IsActive:      true,
		Version:       1,
		AuditFields:   domain.NewAuditFields(userID, s.now()),
	}
	if err := s.Repos.BankRepo.SaveBankAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save bank account", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}
	s.LogInfo(ctx, "Bank account created", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

func (s *bankingService) GetBankAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.Repos.BankRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, notFound(err)
	}
	return account, nil
}

func (s *bankingService) ListBankAccounts(ctx context.Context, limit, offset int) ([]domain.BankAccount, error) {
	accounts, err := s.Repos.BankRepo.ListBankAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

func (s *bankingService) ListBankTransactions(ctx context.Context, bankAccountID string) ([]domain.BankTransaction, error) {
	if _, err := s.Repos.BankRepo.FindBankAccountByID(ctx, bankAccountID); err != nil {
		return nil, notFound(err)
	}
	txns, err := s.Repos.BankRepo.ListBankTransactionsByAccountID(ctx, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	return txns, nil
}

func (s *bankingService) ReconcileBankTransaction(ctx context.Context, bankTransactionID string, reconciled bool, userID string) (*domain.BankTransaction, error) {
	var txn *domain.BankTransaction
	err := s.runInTx(ctx, "reconcile_bank_transaction", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		now := s.now()
		if err := repos.BankRepo.MarkBankTransactionReconciled(ctx, bankTransactionID, reconciled, userID, now); err != nil {
			return notFound(err)
		}
		var err error
		txn, err = repos.BankRepo.FindBankTransactionByID(ctx, bankTransactionID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reconcile bank transaction", slog.String("bank_transaction_id", bankTransactionID))
		return nil, err
	}
	s.LogInfo(ctx, "Bank transaction reconciliation changed",
		slog.String("bank_transaction_id", bankTransactionID),
		slog.Bool("reconciled", reconciled))
	return txn, nil
}
