package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
	"github.com/SscSPs/bookkeeping_ledger/internal/middleware"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// invoiceHandler serves invoices together with the payments and credit notes applied to them.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	applier        portssvc.ReceivablesApplierSvc
	opts           Options
}

func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, applier portssvc.ReceivablesApplierSvc, opts Options) {
	h := &invoiceHandler{invoiceService: invoiceService, applier: applier, opts: opts}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/:id/send", h.sendInvoice)
		invoices.POST("/:id/cancel", h.cancelInvoice)
		invoices.PUT("/:id/lines", h.reviseLines)
		invoices.GET("/:id/credit-notes", h.listCreditNotes)
		invoices.POST("/:id/credit-notes", h.applyCreditNote)
	}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.applyPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:id", h.getPayment)
		payments.DELETE("/:id", h.voidPayment)
	}

	creditNotes := rg.Group("/credit-notes")
	{
		creditNotes.GET("/:id", h.getCreditNote)
		creditNotes.DELETE("/:id", h.voidCreditNote)
	}
}

// createInvoice godoc
// @Summary Create a draft invoice
// @Description Computes subtotal, tax and total from the lines. The invoice starts as draft with nothing paid.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} domain.Invoice
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Invoice number already used"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "create invoice")
		return
	}
	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	c.JSON(http.StatusCreated, invoice)
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Status is effective: an unpaid invoice past its due date reads as overdue.
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", c.Param("id")))
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// listInvoices godoc
// @Summary List invoices
// @Tags invoices
// @Produce  json
// @Param   customerID query string false "Filter by customer"
// @Param   status query string false "Filter by stored status"
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} domain.Invoice
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "list invoices")
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// sendInvoice godoc
// @Summary Mark a draft invoice as sent
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 422 {object} dto.ErrorResponse "Invoice is not a draft"
// @Security BearerAuth
// @Router /invoices/{id}/send [post]
func (h *invoiceHandler) sendInvoice(c *gin.Context) {
	h.transition(c, "send invoice", h.invoiceService.SendInvoice)
}

// cancelInvoice godoc
// @Summary Cancel an invoice
// @Description Only invoices with nothing paid or credited can be cancelled.
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 422 {object} dto.ErrorResponse "Invoice has money applied"
// @Security BearerAuth
// @Router /invoices/{id}/cancel [post]
func (h *invoiceHandler) cancelInvoice(c *gin.Context) {
	h.transition(c, "cancel invoice", h.invoiceService.CancelInvoice)
}

// transition runs a status change on the invoice named in the path.
func (h *invoiceHandler) transition(c *gin.Context, action string, fn func(ctx context.Context, invoiceID, userID string) (*domain.Invoice, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	invoice, err := fn(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, action)
		return
	}
	logger.Info("Invoice status changed", slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusOK, invoice)
}

// reviseLines godoc
// @Summary Replace an invoice's lines
// @Description Recomputes the totals. Rejected once any payment or credit note is applied.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   lines body dto.ReviseInvoiceLinesRequest true "New tax rate and lines"
// @Success 200 {object} domain.Invoice
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 422 {object} dto.ErrorResponse "Invoice has money applied"
// @Security BearerAuth
// @Router /invoices/{id}/lines [put]
func (h *invoiceHandler) reviseLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", c.Param("id")))
	var req dto.ReviseInvoiceLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.ReviseInvoiceLines(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "revise invoice lines")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// applyPayment godoc
// @Summary Apply a customer payment
// @Description Records the payment and raises amount_paid on every allocated invoice atomically.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.ApplyPaymentRequest true "Payment with its allocations"
// @Success 201 {object} domain.PaymentResult
// @Failure 400 {object} dto.ErrorResponse "Validation error or over-allocation, index points at the allocation"
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent modification, retry"
// @Failure 422 {object} dto.ErrorResponse "Invoice is draft or cancelled"
// @Security BearerAuth
// @Router /payments [post]
func (h *invoiceHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	result, err := h.applier.ApplyPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "apply payment")
		return
	}
	logger.Info("Payment applied", slog.String("payment_id", result.Payment.PaymentID), slog.Int("allocations", len(result.Payment.Allocations)))
	h.opts.track(c, utils.EventPaymentApplied, map[string]any{
		"payment_id":  result.Payment.PaymentID,
		"allocations": len(result.Payment.Allocations),
	})
	c.JSON(http.StatusCreated, result)
}

// getPayment godoc
// @Summary Get a payment with its allocations
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *invoiceHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("payment_id", c.Param("id")))
	payment, err := h.invoiceService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "retrieve payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// listPayments godoc
// @Summary List payments
// @Tags payments
// @Produce  json
// @Param   customerID query string false "Filter by customer"
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} domain.Payment
// @Security BearerAuth
// @Router /payments [get]
func (h *invoiceHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}
	payments, err := h.invoiceService.ListPayments(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "list payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// voidPayment godoc
// @Summary Void a payment
// @Description Deletes the payment and lowers amount_paid on every invoice it was allocated to.
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} domain.PaymentResult
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Security BearerAuth
// @Router /payments/{id} [delete]
func (h *invoiceHandler) voidPayment(c *gin.Context) {
	paymentID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("payment_id", paymentID))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	result, err := h.applier.VoidPayment(c.Request.Context(), paymentID, userID)
	if err != nil {
		respondError(c, logger, err, "void payment")
		return
	}
	logger.Info("Payment voided")
	h.opts.track(c, utils.EventPaymentVoided, map[string]any{"payment_id": paymentID})
	c.JSON(http.StatusOK, result)
}

// applyCreditNote godoc
// @Summary Issue a credit note against an invoice
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   creditNote body dto.ApplyCreditNoteRequest true "Credit note details"
// @Success 201 {object} domain.CreditNoteResult
// @Failure 400 {object} dto.ErrorResponse "Amount exceeds the balance due"
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 422 {object} dto.ErrorResponse "Invoice is draft or cancelled"
// @Security BearerAuth
// @Router /invoices/{id}/credit-notes [post]
func (h *invoiceHandler) applyCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", c.Param("id")))
	var req dto.ApplyCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}
	req.InvoiceID = c.Param("id")
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	result, err := h.applier.ApplyCreditNote(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "apply credit note")
		return
	}
	logger.Info("Credit note applied", slog.String("credit_note_id", result.CreditNote.CreditNoteID))
	h.opts.track(c, utils.EventCreditNoteApplied, map[string]any{
		"credit_note_id": result.CreditNote.CreditNoteID,
		"invoice_id":     req.InvoiceID,
	})
	c.JSON(http.StatusCreated, result)
}

// listCreditNotes godoc
// @Summary List an invoice's credit notes
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {array} domain.CreditNote
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/credit-notes [get]
func (h *invoiceHandler) listCreditNotes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", c.Param("id")))
	notes, err := h.invoiceService.ListCreditNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "list credit notes")
		return
	}
	c.JSON(http.StatusOK, notes)
}

// getCreditNote godoc
// @Summary Get a credit note
// @Tags credit-notes
// @Produce  json
// @Param   id path string true "Credit note ID"
// @Success 200 {object} domain.CreditNote
// @Failure 404 {object} dto.ErrorResponse "Credit note not found"
// @Security BearerAuth
// @Router /credit-notes/{id} [get]
func (h *invoiceHandler) getCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("credit_note_id", c.Param("id")))
	note, err := h.invoiceService.GetCreditNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "retrieve credit note")
		return
	}
	c.JSON(http.StatusOK, note)
}

// voidCreditNote godoc
// @Summary Void a credit note
// @Tags credit-notes
// @Produce  json
// @Param   id path string true "Credit note ID"
// @Success 200 {object} domain.CreditNoteResult
// @Failure 404 {object} dto.ErrorResponse "Credit note not found"
// @Security BearerAuth
// @Router /credit-notes/{id} [delete]
func (h *invoiceHandler) voidCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("credit_note_id", c.Param("id")))
	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}
	result, err := h.applier.VoidCreditNote(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "void credit note")
		return
	}
	logger.Info("Credit note voided", slog.String("invoice_id", result.Invoice.InvoiceID))
	c.JSON(http.StatusOK, result)
}
