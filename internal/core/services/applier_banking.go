package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

func (s *transactionApplier) RecordBankTransaction(ctx context.Context, req dto.RecordBankTransactionRequest, userID string) (*domain.BankTransactionResult, error) {
	if req.Amount <= 0 {
		return nil, apperrors.NewFieldError(apperrors.KindZeroAmount, "amount", "bank transaction amount must be greater than zero")
	}
	delta, err := accounting.BankDelta(req.Type, req.Amount)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidLine, err, "")
	}

	var result *domain.BankTransactionResult
	err = s.runInTx(ctx, "record_bank_transaction", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		account, err := repos.BankRepo.FindBankAccountByID(ctx, req.BankAccountID)
		if err != nil {
			return notFound(err)
		}
		if !account.IsActive {
			return apperrors.New(apperrors.KindInvalidState, "bank account %s is closed", account.BankAccountID)
		}

		now := s.now()
		txn := domain.BankTransaction{
			BankTransactionID: uuid.NewString(),
			BankAccountID:     account.BankAccountID,
			TransactionDate:   domain.NormalizeDate(req.TransactionDate.Time),
			Type:              req.Type,
			Amount:            req.Amount,
			Description:       req.Description,
			Reference:         req.Reference,
			AuditFields:       domain.NewAuditFields(userID, now),
		}
		if err := repos.BankRepo.SaveBankTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to save bank transaction: %w", err)
		}
		balance, err := adjustBankBalance(ctx, repos, *account, delta, userID, now)
		if err != nil {
			return err
		}
		result = &domain.BankTransactionResult{Transaction: txn, CurrentBalance: balance}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record bank transaction", slog.String("bank_account_id", req.BankAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank transaction recorded",
		slog.String("bank_transaction_id", result.Transaction.BankTransactionID),
		slog.String("type", string(req.Type)),
		slog.String("amount", req.Amount.String()))
	return result, nil
}

func (s *transactionApplier) DeleteBankTransaction(ctx context.Context, bankTransactionID string, userID string) (*domain.BankTransactionResult, error) {
	var result *domain.BankTransactionResult
	err := s.runInTx(ctx, "delete_bank_transaction", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		txn, err := repos.BankRepo.FindBankTransactionByID(ctx, bankTransactionID)
		if err != nil {
			return notFound(err)
		}
		if txn.Reconciled {
			return apperrors.New(apperrors.KindInvalidState, "bank transaction %s is reconciled", bankTransactionID)
		}
		account, err := repos.BankRepo.FindBankAccountByID(ctx, txn.BankAccountID)
		if err != nil {
			return apperrors.Wrap(apperrors.KindIntegrityViolation, err, "bank transaction %s references a missing account", bankTransactionID)
		}
		delta, err := accounting.BankDelta(txn.Type, txn.Amount)
		if err != nil {
			return apperrors.Wrap(apperrors.KindIntegrityViolation, err, "bank transaction %s", bankTransactionID)
		}

		if err := repos.BankRepo.DeleteBankTransaction(ctx, bankTransactionID); err != nil {
			return fmt.Errorf("failed to delete bank transaction: %w", err)
		}
		balance, err := adjustBankBalance(ctx, repos, *account, delta.Neg(), userID, s.now())
		if err != nil {
			return err
		}
		result = &domain.BankTransactionResult{Transaction: *txn, CurrentBalance: balance}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete bank transaction", slog.String("bank_transaction_id", bankTransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank transaction deleted", slog.String("bank_transaction_id", bankTransactionID))
	return result, nil
}

// adjustBankBalance applies a signed delta to current_balance under the version check.
func adjustBankBalance(ctx context.Context, repos portsrepo.RepositoryProvider, account domain.BankAccount, delta domain.Money, userID string, now time.Time) (domain.Money, error) {
	expected := account.Version
	account.CurrentBalance += delta
	account.Version = expected + 1
	account.Touch(userID, now)
	if err := repos.BankRepo.UpdateBankAccount(ctx, account, expected); err != nil {
		return 0, fmt.Errorf("failed to update bank account %s: %w", account.BankAccountID, err)
	}
	return account.CurrentBalance, nil
}
