package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/accounting"
	"github.com/cenkalti/backoff/v4"
)

const (
	defaultConflictMaxRetries    = 3
	defaultConflictRetryInterval = 10 * time.Millisecond
	defaultRecurringWorkers      = 4
)

// BaseService provides common functionality for all services
type BaseService struct {
	Repos     portsrepo.RepositoryProvider
	TxManager portsrepo.TransactionManager

	clock              func() time.Time
	maxConflictRetries int
	retryInterval      time.Duration
	maxCatchUp         int
	workers            int
}

// ServiceOption is a functional option for configuring the services
type ServiceOption func(*BaseService)

// WithClock replaces time.Now, used for "today" in overdue checks and audit stamps.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// WithConflictRetry sets how often a unit of work is retried after a ConcurrentModification.
func WithConflictRetry(maxRetries int, interval time.Duration) ServiceOption {
	return func(s *BaseService) {
		s.maxConflictRetries = maxRetries
		s.retryInterval = interval
	}
}

// WithRecurringLimits sets the per-profile catch-up cap and the number of profiles run in parallel.
func WithRecurringLimits(maxCatchUp, workers int) ServiceOption {
	return func(s *BaseService) {
		s.maxCatchUp = maxCatchUp
		s.workers = workers
	}
}

// NewBaseService builds the shared service state.
func NewBaseService(repos portsrepo.RepositoryProvider, txManager portsrepo.TransactionManager, options ...ServiceOption) BaseService {
	base := BaseService{
		Repos:              repos,
		TxManager:          txManager,
		clock:              time.Now,
		maxConflictRetries: defaultConflictMaxRetries,
		retryInterval:      defaultConflictRetryInterval,
		maxCatchUp:         accounting.DefaultMaxCatchUp,
		workers:            defaultRecurringWorkers,
	}
	for _, option := range options {
		option(&base)
	}
	if base.maxConflictRetries < 0 {
		base.maxConflictRetries = 0
	}
	if base.workers <= 0 {
		base.workers = 1
	}
	if base.maxCatchUp <= 0 {
		base.maxCatchUp = accounting.DefaultMaxCatchUp
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// now returns the current instant in UTC.
func (s *BaseService) now() time.Time {
	return s.clock().UTC()
}

// runInTx executes fn in a transaction and retries it from scratch when it
// fails with ConcurrentModification. Every other error is returned at once.
func (s *BaseService) runInTx(ctx context.Context, op string, fn portsrepo.TxFunc) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := s.TxManager.WithinTransaction(ctx, fn)
		if err == nil {
			return nil
		}
		if apperrors.IsRetryable(err) {
			s.LogDebug(ctx, "Concurrent modification, retrying",
				slog.String("operation", op),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retryInterval
	policy.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(s.maxConflictRetries)), ctx))
	if err != nil && apperrors.IsRetryable(err) {
		s.LogError(ctx, err, "Giving up after concurrent modifications",
			slog.String("operation", op),
			slog.Int("attempts", attempt))
	}
	return err
}

// notFound turns a repository ErrNotFound into a typed NotFound ledger error.
func notFound(err error) error {
	var le *apperrors.LedgerError
	if errors.As(err, &le) {
		return err
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.Wrap(apperrors.KindNotFound, err, "")
	}
	return err
}
