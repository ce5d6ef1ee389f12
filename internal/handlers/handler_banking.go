package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

type bankingHandler struct {
	bankingService portssvc.BankingSvcFacade
	applier        portssvc.BankApplierSvc
	opts           Options
}

func registerBankingRoutes(rg *gin.RouterGroup, bankingService portssvc.BankingSvcFacade, applier portssvc.BankApplierSvc, opts Options) {
	h := &bankingHandler{bankingService: bankingService, applier: applier, opts: opts}

	bankAccounts := rg.Group("/bank-accounts")
	{
		bankAccounts.POST("", h.createBankAccount)
		bankAccounts.GET("", h.listBankAccounts)
		bankAccounts.GET("/:id", h.getBankAccount)
		bankAccounts.GET("/:id/transactions", h.listTransactions)
		bankAccounts.POST("/:id/transactions", h.recordTransaction)
	}

	bankTransactions := rg.Group("/bank-transactions")
	{
		bankTransactions.DELETE("/:id", h.deleteTransaction)
		bankTransactions.PUT("/:id/reconcile", h.reconcileTransaction)
	}
}

func (h *bankingHandler) toResponse(acc *domain.BankAccount) dto.BankAccountResponse {
	return dto.BankAccountResponse{
		BankAccount:      *acc,
		FormattedBalance: utils.FormatMoney(acc.CurrentBalance, h.opts.CurrencyFormat),
	}
}

// createBankAccount godoc
// @Summary Open a bank account
// @Tags banking
// @Accept  json
// @Produce  json
// @Param   bankAccount body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /bank-accounts [post]
func (h *bankingHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	acc, err := h.bankingService.CreateBankAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "create bank account")
		return
	}
	logger.Info("Bank account created", slog.String("bank_account_id", acc.BankAccountID))
	c.JSON(http.StatusCreated, h.toResponse(acc))
}

// getBankAccount godoc
// @Summary Get a bank account
// @Tags banking
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} dto.ErrorResponse "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id} [get]
func (h *bankingHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("bank_account_id", c.Param("id")))
	acc, err := h.bankingService.GetBankAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "retrieve bank account")
		return
	}
	c.JSON(http.StatusOK, h.toResponse(acc))
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Tags banking
// @Produce  json
// @Param   limit query int false "Limit"
// @Param   offset query int false "Offset"
// @Success 200 {array} dto.BankAccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /bank-accounts [get]
func (h *bankingHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset, err := pageParams(c)
	if err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}
	accounts, err := h.bankingService.ListBankAccounts(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, logger, err, "list bank accounts")
		return
	}
	resp := make([]dto.BankAccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = h.toResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, resp)
}

// listTransactions godoc
// @Summary List a bank account's transactions
// @Tags banking
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Success 200 {array} domain.BankTransaction
// @Failure 404 {object} dto.ErrorResponse "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id}/transactions [get]
func (h *bankingHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("bank_account_id", c.Param("id")))
	txns, err := h.bankingService.ListBankTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "list bank transactions")
		return
	}
	c.JSON(http.StatusOK, txns)
}

// recordTransaction godoc
// @Summary Record a deposit or withdrawal
// @Description Inserts the transaction and moves the bank account's current balance in the same transaction.
// @Tags banking
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank account ID"
// @Param   transaction body dto.RecordBankTransactionRequest true "Transaction details"
// @Success 201 {object} domain.BankTransactionResult
// @Failure 400 {object} dto.ErrorResponse "Non-positive amount"
// @Failure 404 {object} dto.ErrorResponse "Bank account not found"
// @Security BearerAuth
// @Router /bank-accounts/{id}/transactions [post]
func (h *bankingHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("bank_account_id", c.Param("id")))
	var req dto.RecordBankTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	req.BankAccountID = c.Param("id")
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	result, err := h.applier.RecordBankTransaction(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "record bank transaction")
		return
	}
	logger.Info("Bank transaction recorded", slog.String("bank_transaction_id", result.Transaction.BankTransactionID))
	h.opts.track(c, utils.EventBankTransactionRecord, map[string]any{
		"bank_account_id": req.BankAccountID,
		"type":            string(req.Type),
	})
	c.JSON(http.StatusCreated, result)
}

// deleteTransaction godoc
// @Summary Delete a bank transaction
// @Description Removes the transaction and reverses its effect on the bank balance.
// @Tags banking
// @Produce  json
// @Param   id path string true "Bank transaction ID"
// @Success 200 {object} domain.BankTransactionResult
// @Failure 404 {object} dto.ErrorResponse "Bank transaction not found"
// @Security BearerAuth
// @Router /bank-transactions/{id} [delete]
func (h *bankingHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("bank_transaction_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	result, err := h.applier.DeleteBankTransaction(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "delete bank transaction")
		return
	}
	logger.Info("Bank transaction deleted", slog.Int64("current_balance", int64(result.CurrentBalance)))
	c.JSON(http.StatusOK, result)
}

// reconcileTransaction godoc
// @Summary Set a bank transaction's reconciled flag
// @Tags banking
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank transaction ID"
// @Param   reconcile body dto.ReconcileBankTransactionRequest true "Reconciled flag"
// @Success 200 {object} domain.BankTransaction
// @Failure 404 {object} dto.ErrorResponse "Bank transaction not found"
// @Security BearerAuth
// @Router /bank-transactions/{id}/reconcile [put]
func (h *bankingHandler) reconcileTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("bank_transaction_id", c.Param("id")))
	var req dto.ReconcileBankTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	txn, err := h.bankingService.ReconcileBankTransaction(c.Request.Context(), c.Param("id"), req.Reconciled, userID)
	if err != nil {
		respondError(c, logger, err, "reconcile bank transaction")
		return
	}
	c.JSON(http.StatusOK, txn)
}
