package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

type recurringHandler struct {
	profileService portssvc.RecurringProfileSvc
	applier        portssvc.PayablesApplierSvc
	opts           Options
}

// nextDueResponse is the body of GET /recurring-profiles/{id}/next-due.
type nextDueResponse struct {
	ProfileID string   `json:"profileID"`
	NextDue   dto.Date `json:"nextDue" swaggertype:"string" example:"2024-02-29"`
}

// generateResponse is the body of POST /recurring/generate.
type generateResponse struct {
	Results []domain.RecurringRunResult `json:"results"`
	Errors  string                      `json:"errors,omitempty"`
}

func registerRecurringRoutes(rg *gin.RouterGroup, profileService portssvc.RecurringProfileSvc, applier portssvc.PayablesApplierSvc, opts Options) {
	h := &recurringHandler{profileService: profileService, applier: applier, opts: opts}

	profiles := rg.Group("/recurring-profiles")
	{
		profiles.POST("", h.createProfile)
		profiles.GET("", h.listProfiles)
		profiles.GET("/:id", h.getProfile)
		profiles.POST("/:id/pause", h.pauseProfile)
		profiles.POST("/:id/resume", h.resumeProfile)
		profiles.GET("/:id/next-due", h.nextDue)
		profiles.POST("/:id/generate", h.generateForProfile)
	}

	rg.POST("/recurring/generate", h.generateAll)
}

// asOf reads the optional generation date; today when absent.
func (h *recurringHandler) asOf(c *gin.Context) (time.Time, error) {
	var req dto.GenerateRecurringRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return time.Time{}, err
		}
	}
	if d := req.AsOf.Ptr(); d != nil {
		return *d, nil
	}
	return domain.NormalizeDate(h.opts.today()), nil
}

// createProfile godoc
// @Summary Create a recurring expense profile
// @Description The first expense falls due on the start date; later ones keep its day of month, clamped to shorter months.
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   profile body dto.CreateRecurringProfileRequest true "Profile details"
// @Success 201 {object} domain.RecurringExpenseProfile
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /recurring-profiles [post]
func (h *recurringHandler) createProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecurringProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	profile, err := h.profileService.CreateProfile(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "create recurring profile")
		return
	}
	logger.Info("Recurring profile created", slog.String("profile_id", profile.ProfileID), slog.String("frequency", string(profile.Frequency)))
	c.JSON(http.StatusCreated, profile)
}

// getProfile godoc
// @Summary Get a recurring expense profile
// @Tags recurring
// @Produce  json
// @Param   id path string true "Profile ID"
// @Success 200 {object} domain.RecurringExpenseProfile
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Security BearerAuth
// @Router /recurring-profiles/{id} [get]
func (h *recurringHandler) getProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("profile_id", c.Param("id")))
	profile, err := h.profileService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "retrieve recurring profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// listProfiles godoc
// @Summary List recurring expense profiles
// @Tags recurring
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} domain.RecurringExpenseProfile
// @Security BearerAuth
// @Router /recurring-profiles [get]
func (h *recurringHandler) listProfiles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListRecurringProfilesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}
	profiles, err := h.profileService.ListProfiles(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "list recurring profiles")
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// pauseProfile godoc
// @Summary Pause a recurring profile
// @Tags recurring
// @Produce  json
// @Param   id path string true "Profile ID"
// @Success 200 {object} domain.RecurringExpenseProfile
// @Failure 422 {object} dto.ErrorResponse "Profile is not active"
// @Security BearerAuth
// @Router /recurring-profiles/{id}/pause [post]
func (h *recurringHandler) pauseProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("profile_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	profile, err := h.profileService.PauseProfile(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "pause recurring profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// resumeProfile godoc
// @Summary Resume a paused recurring profile
// @Tags recurring
// @Produce  json
// @Param   id path string true "Profile ID"
// @Success 200 {object} domain.RecurringExpenseProfile
// @Failure 422 {object} dto.ErrorResponse "Profile is not paused"
// @Security BearerAuth
// @Router /recurring-profiles/{id}/resume [post]
func (h *recurringHandler) resumeProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("profile_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	profile, err := h.profileService.ResumeProfile(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "resume recurring profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// nextDue godoc
// @Summary Next due date of a recurring profile
// @Tags recurring
// @Produce  json
// @Param   id path string true "Profile ID"
// @Success 200 {object} nextDueResponse
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Security BearerAuth
// @Router /recurring-profiles/{id}/next-due [get]
func (h *recurringHandler) nextDue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("profile_id", c.Param("id")))
	due, err := h.profileService.NextDueDate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "compute next due date")
		return
	}
	c.JSON(http.StatusOK, nextDueResponse{ProfileID: c.Param("id"), NextDue: dto.NewDate(due)})
}

// generateForProfile godoc
// @Summary Generate due expenses for one profile
// @Description Creates one approved expense per missed period up to asOf, capped per run. Safe to call repeatedly.
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   id path string true "Profile ID"
// @Param   request body dto.GenerateRecurringRequest false "Generation date, defaults to today"
// @Success 200 {object} domain.RecurringRunResult
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent run, retry"
// @Security BearerAuth
// @Router /recurring-profiles/{id}/generate [post]
func (h *recurringHandler) generateForProfile(c *gin.Context) {
	profileID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("profile_id", profileID))
	asOf, err := h.asOf(c)
	if err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	result, err := h.applier.GenerateRecurringExpensesForProfile(c.Request.Context(), profileID, asOf, userID)
	if err != nil {
		respondError(c, logger, err, "generate recurring expenses")
		return
	}
	logger.Info("Recurring expenses generated", slog.Int("generated", len(result.Generated)))
	h.opts.track(c, utils.EventRecurringRun, map[string]any{
		"profiles":  1,
		"generated": len(result.Generated),
	})
	c.JSON(http.StatusOK, result)
}

// generateAll godoc
// @Summary Generate due expenses for every active profile
// @Description Each profile runs in its own transaction. Failures of individual profiles are reported next to the successful results.
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   request body dto.GenerateRecurringRequest false "Generation date, defaults to today"
// @Success 200 {object} generateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /recurring/generate [post]
func (h *recurringHandler) generateAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	asOf, err := h.asOf(c)
	if err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	results, err := h.applier.GenerateRecurringExpenses(c.Request.Context(), asOf, userID)
	if err != nil && len(results) == 0 {
		respondError(c, logger, err, "generate recurring expenses")
		return
	}

	generated := 0
	for _, r := range results {
		generated += len(r.Generated)
	}
	logger.Info("Recurring run finished", slog.Int("profiles", len(results)), slog.Int("generated", generated))
	h.opts.track(c, utils.EventRecurringRun, map[string]any{
		"profiles":  len(results),
		"generated": generated,
	})

	resp := generateResponse{Results: results}
	if err != nil {
		logger.Warn("Some recurring profiles failed", slog.String("error", err.Error()))
		resp.Errors = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
