package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

func (r *repo) SaveProfile(_ context.Context, profile domain.RecurringExpenseProfile) error {
	return r.write(func(st *state) error {
		if _, exists := st.profiles[profile.ProfileID]; exists {
			return fmt.Errorf("recurring profile %s: %w", profile.ProfileID, apperrors.ErrDuplicate)
		}
		st.profiles[profile.ProfileID] = profile
		return nil
	})
}

func (r *repo) FindProfileByID(_ context.Context, profileID string) (*domain.RecurringExpenseProfile, error) {
	var out *domain.RecurringExpenseProfile
	err := r.read(func(st *state) error {
		p, ok := st.profiles[profileID]
		if !ok {
			return fmt.Errorf("recurring profile %s: %w", profileID, apperrors.ErrNotFound)
		}
		out = &p
		return nil
	})
	return out, err
}

func (r *repo) ListProfiles(_ context.Context, status domain.RecurringStatus, limit int, offset int) ([]domain.RecurringExpenseProfile, error) {
	var out []domain.RecurringExpenseProfile
	_ = r.read(func(st *state) error {
		var all []domain.RecurringExpenseProfile
		for _, p := range st.profiles {
			if status != "" && p.Status != status {
				continue
			}
			all = append(all, p)
		}
		slices.SortFunc(all, func(a, b domain.RecurringExpenseProfile) int {
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
				return c
			}
			return strings.Compare(a.ProfileID, b.ProfileID)
		})
		out = page(all, limit, offset)
		return nil
	})
	return out, nil
}

func (r *repo) UpdateProfile(_ context.Context, profile domain.RecurringExpenseProfile, expectedVersion int64) error {
	return r.write(func(st *state) error {
		stored, ok := st.profiles[profile.ProfileID]
		if !ok {
			return fmt.Errorf("recurring profile %s: %w", profile.ProfileID, apperrors.ErrNotFound)
		}
		if stored.Version != expectedVersion {
			return versionConflict("recurring profile", profile.ProfileID, expectedVersion, stored.Version)
		}
		profile.CreatedAt = stored.CreatedAt
		profile.CreatedBy = stored.CreatedBy
		st.profiles[profile.ProfileID] = profile
		return nil
	})
}
