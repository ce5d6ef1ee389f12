package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// Options carries presentation and analytics settings shared by every handler.
type Options struct {
	CurrencyFormat utils.CurrencyFormat
	Analytics      *utils.PosthogClientWrapper
	// Now is the clock used for "today" defaults. nil means time.Now.
	Now func() time.Time
}

func (o Options) today() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// track sends a ledger event for the current user; a disabled analytics client makes it a no-op.
func (o Options) track(c *gin.Context, event string, props map[string]any) {
	middleware.PosthogEvent(c, o.Analytics, event, props)
}

// statusForError maps ledger errors onto HTTP status codes.
func statusForError(err error) int {
	if kind, ok := apperrors.KindOf(err); ok {
		switch kind {
		case apperrors.KindNotFound:
			return http.StatusNotFound
		case apperrors.KindConcurrentModification:
			return http.StatusConflict
		case apperrors.KindInvalidState:
			return http.StatusUnprocessableEntity
		case apperrors.KindIntegrityViolation:
			return http.StatusInternalServerError
		default:
			return http.StatusBadRequest
		}
	}
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse builds the body for err. Internal errors never leak their message.
func errorResponse(err error, status int, action string) dto.ErrorResponse {
	if status >= http.StatusInternalServerError {
		return dto.ErrorResponse{Error: "Failed to " + action}
	}
	resp := dto.ErrorResponse{Error: err.Error()}
	var le *apperrors.LedgerError
	if errors.As(err, &le) {
		resp.Kind = string(le.Kind)
		resp.Field = le.Field
		if le.Index != apperrors.NoIndex {
			idx := le.Index
			resp.Index = &idx
		}
	}
	return resp
}

// respondError logs err at a level matching its status and writes the error body.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("action", action), slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, errorResponse(err, status, action))
}

// bindError reports a malformed request body or query.
func bindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}

// currentUser returns the acting user or writes a 401.
func currentUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

func pageParams(c *gin.Context) (limit, offset int, err error) {
	if v := c.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
			return 0, 0, errors.New("limit must be a non-negative integer")
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, errors.New("offset must be a non-negative integer")
		}
	}
	return limit, offset, nil
}
