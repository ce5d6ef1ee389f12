package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// RecurringRepositoryFacade covers recurring expense profiles.
type RecurringRepositoryFacade interface {
	SaveProfile(ctx context.Context, profile domain.RecurringExpenseProfile) error
	FindProfileByID(ctx context.Context, profileID string) (*domain.RecurringExpenseProfile, error)

	// ListProfiles lists profiles, optionally only those with the given status.
	ListProfiles(ctx context.Context, status domain.RecurringStatus, limit int, offset int) ([]domain.RecurringExpenseProfile, error)

	// UpdateProfile writes the profile when the stored version equals expectedVersion.
	UpdateProfile(ctx context.Context, profile domain.RecurringExpenseProfile, expectedVersion int64) error
}
