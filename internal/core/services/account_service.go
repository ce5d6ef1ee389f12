package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/google/uuid"
)

// accountService manages the chart of accounts. Balances are only ever
// changed by the transaction applier.
type accountService struct {
	BaseService
}

// NewAccountService creates a new account service.
func NewAccountService(base BaseService) portssvc.AccountSvcFacade {
	return &accountService{BaseService: base}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.AccountType)
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		Editable:    true,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	if err := s.Repos.AccountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.Repos.AccountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, notFound(err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	accounts, err := s.Repos.AccountRepo.ListAccounts(ctx, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) ListAccountPostings(ctx context.Context, accountID string) ([]domain.JournalLine, error) {
	if _, err := s.Repos.AccountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, notFound(err)
	}
	lines, err := s.Repos.JournalRepo.ListLinesByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings for account %s: %w", accountID, err)
	}
	return lines, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	var updated domain.Account
	err := s.runInTx(ctx, "update_account", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		account, err := repos.AccountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return notFound(err)
		}
		updated = *account
		if req.Name != nil {
			updated.Name = *req.Name
		}
		if req.Description != nil {
			updated.Description = *req.Description
		}
		if req.IsActive != nil {
			updated.IsActive = *req.IsActive
		}
		updated.Touch(userID, s.now())
		return repos.AccountRepo.UpdateAccount(ctx, updated)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID), slog.Bool("is_active", updated.IsActive))
	return &updated, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	err := s.runInTx(ctx, "delete_account", func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		account, err := repos.AccountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return notFound(err)
		}
		if !account.Editable {
			return apperrors.New(apperrors.KindInvalidState, "account %s is a system account", accountID)
		}
		posted, err := repos.JournalRepo.HasPostings(ctx, accountID)
		if err != nil {
			return fmt.Errorf("failed to check postings: %w", err)
		}
		if posted {
			return apperrors.New(apperrors.KindInvalidState, "account %s has postings; archive it instead", accountID)
		}
		return repos.AccountRepo.DeleteAccount(ctx, accountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID), slog.String("user_id", userID))
	return nil
}
