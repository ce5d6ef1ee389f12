package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// recurringService manages recurring expense profiles; generation lives in the applier.
type recurringService struct {
	BaseService
}

// NewRecurringService creates a new recurring profile service.
func NewRecurringService(base BaseService) portssvc.RecurringProfileSvc {
	return &recurringService{BaseService: base}
}

var _ portssvc.RecurringProfileSvc = (*recurringService)(nil)

func (s *recurringService) CreateProfile(ctx context.Context, req dto.CreateRecurringProfileRequest, userID string) (*domain.RecurringExpenseProfile, error) {
	if !req.Frequency.IsValid() {
		return nil, apperrors.NewFieldError(apperrors.KindInvalidLine, "frequency", "unknown frequency %q", req.Frequency)
	}
	start := domain.NormalizeDate(req.StartDate.Time)
	end := req.EndDate.Ptr()
	if end != nil && end.Before(start) {
		return nil, apperrors.NewFieldError(apperrors.KindInvalidLine, "endDate", "end date is before the start date")
	}

	profile := domain.RecurringExpenseProfile{
		ProfileID:   uuid.NewString(),
		CategoryID:  req.CategoryID,
		VendorID:    req.VendorID,
		Description: req.Description,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		StartDate:   start,
		EndDate:     end,
		Status:      domain.RecurringActive,
		Version:     1,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	if err := s.Repos.RecurringRepo.SaveProfile(ctx, profile); err != nil {
		s.LogError(ctx, err, "Failed to save recurring profile")
		return nil, fmt.Errorf("failed to save recurring profile: %w", err)
	}
	s.LogInfo(ctx, "Recurring profile created",
		slog.String("profile_id", profile.ProfileID),
		slog.String("frequency", string(profile.Frequency)))
	return &profile, nil
}

func (s *recurringService) GetProfile(ctx context.Context, profileID string) (*domain.RecurringExpenseProfile, error) {
	profile, err := s.Repos.RecurringRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, notFound(err)
	}
	return profile, nil
}

func (s *recurringService) ListProfiles(ctx context.Context, params dto.ListRecurringProfilesParams) ([]domain.RecurringExpenseProfile, error) {
	profiles, err := s.Repos.RecurringRepo.ListProfiles(ctx, params.Status, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring profiles: %w", err)
	}
	return profiles, nil
}

func (s *recurringService) PauseProfile(ctx context.Context, profileID string, userID string) (*domain.RecurringExpenseProfile, error) {
	return s.setStatus(ctx, "pause_profile", profileID, userID, func(p *domain.RecurringExpenseProfile) error {
		if p.Status != domain.RecurringActive {
			return apperrors.New(apperrors.KindInvalidState, "profile %s is %s, only active profiles can be paused", p.ProfileID, p.Status)
		}
		p.Status = domain.RecurringPaused
		return nil
	})
}

func (s *recurringService) ResumeProfile(ctx context.Context, profileID string, userID string) (*domain.RecurringExpenseProfile, error) {
	return s.setStatus(ctx, "resume_profile", profileID, userID, func(p *domain.RecurringExpenseProfile) error {
		if p.Status != domain.RecurringPaused {
			return apperrors.New(apperrors.KindInvalidState, "profile %s is %s, only paused profiles can be resumed", p.ProfileID, p.Status)
		}
		exhausted, err := accounting.ScheduleExhausted(*p)
		if err != nil {
			return apperrors.Wrap(apperrors.KindIntegrityViolation, err, "profile %s", p.ProfileID)
		}
		if exhausted {
			p.Status = domain.RecurringFinished
		} else {
			p.Status = domain.RecurringActive
		}
		return nil
	})
}

func (s *recurringService) setStatus(ctx context.Context, op, profileID, userID string, mutate func(p *domain.RecurringExpenseProfile) error) (*domain.RecurringExpenseProfile, error) {
	var updated domain.RecurringExpenseProfile
	err := s.runInTx(ctx, op, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		profile, err := repos.RecurringRepo.FindProfileByID(ctx, profileID)
		if err != nil {
			return notFound(err)
		}
		expected := profile.Version
		updated = *profile
		if err := mutate(&updated); err != nil {
			return err
		}
		updated.Version = expected + 1
		updated.Touch(userID, s.now())
		return repos.RecurringRepo.UpdateProfile(ctx, updated, expected)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to change recurring profile status", slog.String("operation", op), slog.String("profile_id", profileID))
		return nil, err
	}
	s.LogInfo(ctx, "Recurring profile status changed",
		slog.String("profile_id", profileID),
		slog.String("status", string(updated.Status)))
	return &updated, nil
}

func (s *recurringService) NextDueDate(ctx context.Context, profileID string) (time.Time, error) {
	profile, err := s.Repos.RecurringRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		return time.Time{}, notFound(err)
	}
	if profile.Status == domain.RecurringFinished {
		return time.Time{}, apperrors.New(apperrors.KindInvalidState, "profile %s is finished", profileID)
	}
	due, err := accounting.NextDueDate(*profile)
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.KindIntegrityViolation, err, "profile %s", profileID)
	}
	return due, nil
}
