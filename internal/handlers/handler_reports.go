package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

type reportHandler struct {
	consistency portssvc.ConsistencySvc
	opts        Options
}

func registerReportRoutes(rg *gin.RouterGroup, consistency portssvc.ConsistencySvc, opts Options) {
	h := &reportHandler{consistency: consistency, opts: opts}
	rg.GET("/reports/consistency", h.consistencyCheck)
}

// consistencyCheck godoc
// @Summary Audit materialized balances
// @Description Recomputes every account, bank, invoice and expense balance and lists the values that disagree. Nothing is corrected.
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.ConsistencyReport
// @Failure 500 {object} dto.ErrorResponse "Failed to run the check"
// @Security BearerAuth
// @Router /reports/consistency [get]
func (h *reportHandler) consistencyCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	report, err := h.consistency.Check(c.Request.Context())
	if report == nil {
		if err == nil {
			err = apperrors.ErrInternal
		}
		respondError(c, logger, err, "run consistency check")
		return
	}

	if !report.Consistent() {
		logger.Error("Consistency check found mismatches", slog.Int("mismatches", len(report.Mismatches)))
		h.opts.track(c, utils.EventConsistencyCheckFailed, map[string]any{
			"mismatches": len(report.Mismatches),
		})
	}
	c.JSON(http.StatusOK, report)
}
