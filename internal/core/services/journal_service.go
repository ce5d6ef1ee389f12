package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
)

const defaultJournalPageSize = 20

// journalService reads posted journals.
type journalService struct {
	BaseService
}

// NewJournalService creates a new JournalQuerySvc.
func NewJournalService(base BaseService) portssvc.JournalQuerySvc {
	return &journalService{BaseService: base}
}

var _ portssvc.JournalQuerySvc = (*journalService)(nil)

func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.Repos.JournalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, notFound(err)
	}
	return journal, nil
}

func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}
	journals, nextToken, err := s.Repos.JournalRepo.ListJournals(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals", slog.Int("limit", limit))
		return nil, err
	}
	if journals == nil {
		journals = []domain.Journal{}
	}
	return &dto.ListJournalsResponse{Journals: journals, NextToken: nextToken}, nil
}
