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

type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
	applier        portssvc.PayablesApplierSvc
	opts           Options
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, applier portssvc.PayablesApplierSvc, opts Options) {
	h := &expenseHandler{expenseService: expenseService, applier: applier, opts: opts}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.POST("/:id/approve", h.approveExpense)
		expenses.POST("/:id/reject", h.rejectExpense)
		expenses.GET("/:id/payments", h.listPayments)
		expenses.POST("/:id/payments", h.applyPayment)
	}

	rg.DELETE("/expense-payments/:id", h.voidPayment)
}

// createExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} domain.Expense
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "create expense")
		return
	}
	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID), slog.String("status", string(expense.Status)))
	c.JSON(http.StatusCreated, expense)
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce  json
// @Param   id path string true "Expense ID"
// @Success 200 {object} domain.Expense
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", c.Param("id")))
	expense, err := h.expenseService.GetExpense(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "retrieve expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// listExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   recurringProfileID query string false "Only expenses generated by this profile"
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} domain.Expense
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}
	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "list expenses")
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// approveExpense godoc
// @Summary Approve a pending expense
// @Tags expenses
// @Produce  json
// @Param   id path string true "Expense ID"
// @Success 200 {object} domain.Expense
// @Failure 422 {object} dto.ErrorResponse "Expense is not pending"
// @Security BearerAuth
// @Router /expenses/{id}/approve [post]
func (h *expenseHandler) approveExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	expense, err := h.expenseService.ApproveExpense(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "approve expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// rejectExpense godoc
// @Summary Reject a pending expense
// @Tags expenses
// @Produce  json
// @Param   id path string true "Expense ID"
// @Success 200 {object} domain.Expense
// @Failure 422 {object} dto.ErrorResponse "Expense is not pending"
// @Security BearerAuth
// @Router /expenses/{id}/reject [post]
func (h *expenseHandler) rejectExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	expense, err := h.expenseService.RejectExpense(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "reject expense")
		return
	}
	c.JSON(http.StatusOK, expense)
}

// listPayments godoc
// @Summary List payments made against an expense
// @Tags expenses
// @Produce  json
// @Param   id path string true "Expense ID"
// @Success 200 {array} domain.ExpensePayment
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id}/payments [get]
func (h *expenseHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", c.Param("id")))
	payments, err := h.expenseService.ListExpensePayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "list expense payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// applyPayment godoc
// @Summary Pay an expense
// @Description Records the payment and raises the expense's amount_paid atomically.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   id path string true "Expense ID"
// @Param   payment body dto.ApplyExpensePaymentRequest true "Payment details"
// @Success 201 {object} domain.ExpensePaymentResult
// @Failure 400 {object} dto.ErrorResponse "Non-positive amount or overpayment"
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Failure 422 {object} dto.ErrorResponse "Expense is not approved"
// @Security BearerAuth
// @Router /expenses/{id}/payments [post]
func (h *expenseHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_id", c.Param("id")))
	var req dto.ApplyExpensePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	req.ExpenseID = c.Param("id")
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	result, err := h.applier.ApplyExpensePayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "apply expense payment")
		return
	}
	logger.Info("Expense payment applied", slog.String("expense_payment_id", result.Payment.ExpensePaymentID), slog.String("status", string(result.Expense.Status)))
	h.opts.track(c, utils.EventExpensePaid, map[string]any{
		"expense_id": req.ExpenseID,
		"status":     string(result.Expense.Status),
	})
	c.JSON(http.StatusCreated, result)
}

// voidPayment godoc
// @Summary Void an expense payment
// @Tags expenses
// @Produce  json
// @Param   id path string true "Expense payment ID"
// @Success 200 {object} domain.ExpensePaymentResult
// @Failure 404 {object} dto.ErrorResponse "Expense payment not found"
// @Security BearerAuth
// @Router /expense-payments/{id} [delete]
func (h *expenseHandler) voidPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("expense_payment_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	result, err := h.applier.VoidExpensePayment(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "void expense payment")
		return
	}
	c.JSON(http.StatusOK, result)
}
