package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

type journalHandler struct {
	applier      portssvc.JournalPostingSvc
	journalQuery portssvc.JournalQuerySvc
	opts         Options
}

// registerJournalRoutes registers routes for posting, reading and reversing journals.
func registerJournalRoutes(rg *gin.RouterGroup, applier portssvc.JournalPostingSvc, journalQuery portssvc.JournalQuerySvc, opts Options) {
	h := &journalHandler{applier: applier, journalQuery: journalQuery, opts: opts}

	journals := rg.Group("/journals")
	{
		journals.POST("", h.postJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:id", h.getJournal)
		journals.POST("/:id/reverse", h.reverseJournal)
	}
}

// postJournal godoc
// @Summary Post a journal entry
// @Description Validates the lines, writes the journal and updates every touched account balance in one transaction.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.PostJournalRequest true "Journal date, description and lines"
// @Success 201 {object} domain.PostingResult
// @Failure 400 {object} dto.ErrorResponse "Validation error, index points at the offending line"
// @Failure 404 {object} dto.ErrorResponse "Unknown account"
// @Failure 409 {object} dto.ErrorResponse "Concurrent modification, retry"
// @Failure 422 {object} dto.ErrorResponse "Archived account"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	result, err := h.applier.PostJournalEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "post journal")
		return
	}

	logger.Info("Journal posted", slog.String("journal_id", result.Journal.JournalID), slog.Int("lines", len(result.Journal.Lines)))
	h.opts.track(c, utils.EventJournalPosted, map[string]any{
		"journal_id": result.Journal.JournalID,
		"lines":      len(result.Journal.Lines),
	})
	c.JSON(http.StatusCreated, result)
}

// getJournal godoc
// @Summary Get a journal with its lines
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 200 {object} domain.Journal
// @Failure 404 {object} dto.ErrorResponse "Journal not found"
// @Security BearerAuth
// @Router /journals/{id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("journal_id", c.Param("id")))
	journal, err := h.journalQuery.GetJournalByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "retrieve journal")
		return
	}
	c.JSON(http.StatusOK, journal)
}

// listJournals godoc
// @Summary List journals
// @Description Newest first. Pass the returned nextToken to fetch the following page.
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters or token"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}

	resp, err := h.journalQuery.ListJournals(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "list journals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// reverseJournal godoc
// @Summary Reverse a journal
// @Description Posts an equal and opposite journal and marks the original as reversed. The date defaults to today.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   id path string true "Journal ID"
// @Param   reversal body dto.ReverseJournalRequest false "Optional date and description"
// @Success 201 {object} domain.PostingResult
// @Failure 404 {object} dto.ErrorResponse "Journal not found"
// @Failure 422 {object} dto.ErrorResponse "Journal already reversed or is itself a reversal"
// @Security BearerAuth
// @Router /journals/{id}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	journalID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("journal_id", journalID))
	var req dto.ReverseJournalRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, logger, err, "request format")
			return
		}
	}
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	result, err := h.applier.ReverseJournalEntry(c.Request.Context(), journalID, req, userID)
	if err != nil {
		respondError(c, logger, err, "reverse journal")
		return
	}

	logger.Info("Journal reversed", slog.String("reversal_id", result.Journal.JournalID))
	h.opts.track(c, utils.EventJournalReversed, map[string]any{
		"journal_id":  journalID,
		"reversal_id": result.Journal.JournalID,
	})
	c.JSON(http.StatusCreated, result)
}
