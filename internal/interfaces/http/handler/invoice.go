package handler

import (
	ledgerapp "github.com/cobranza/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice-related API endpoints. Creating a payment
// invoice triggers a matching pass against the client's open charges.
type InvoiceHandler struct {
	BaseHandler
	invoiceService        *ledgerapp.InvoiceService
	reconciliationService *ledgerapp.ReconciliationService
	receiptService        *ledgerapp.ReceiptService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(
	invoiceService *ledgerapp.InvoiceService,
	reconciliationService *ledgerapp.ReconciliationService,
	receiptService *ledgerapp.ReceiptService,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:        invoiceService,
		reconciliationService: reconciliationService,
		receiptService:        receiptService,
	}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/open", h.ListOpen)
		invoices.GET("/closed", h.ListClosed)
		invoices.GET("/:id", h.GetByID)
		invoices.PUT("/:id", h.Update)
		invoices.DELETE("/:id", h.Delete)
		invoices.GET("/:id/reconciliations", h.ListReconciliations)
		invoices.GET("/:id/receipts", h.ListReceipts)
	}
}

// Create godoc
// @ID           createInvoice
// @Summary      Create a new invoice
// @Description  Creates a charge or payment invoice. Payments immediately run
// @Description  a matching pass against the client's oldest open charges.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.CreateInvoiceRequest true "Invoice creation request"
// @Success      201 {object} APIResponse[ledgerapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = getActor(c)

	invoice, err := h.invoiceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID godoc
// @ID           getInvoiceById
// @Summary      Get invoice by ID
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List godoc
// @ID           listInvoices
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        client_id query string false "Filter by client" format(uuid)
// @Param        kind query string false "Filter by kind" Enums(CHARGE, PAYMENT)
// @Param        status query string false "Filter by status" Enums(OPEN, CLOSED)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]ledgerapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter ledgerapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// ListOpen godoc
// @ID           listOpenInvoices
// @Summary      List open invoices
// @Tags         invoices
// @Produce      json
// @Param        client_id query string false "Filter by client" format(uuid)
// @Param        kind query string false "Filter by kind" Enums(CHARGE, PAYMENT)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]ledgerapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /invoices/open [get]
func (h *InvoiceHandler) ListOpen(c *gin.Context) {
	h.listWithStatus(c, "OPEN")
}

// ListClosed godoc
// @ID           listClosedInvoices
// @Summary      List closed invoices
// @Tags         invoices
// @Produce      json
// @Param        client_id query string false "Filter by client" format(uuid)
// @Param        kind query string false "Filter by kind" Enums(CHARGE, PAYMENT)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]ledgerapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /invoices/closed [get]
func (h *InvoiceHandler) ListClosed(c *gin.Context) {
	h.listWithStatus(c, "CLOSED")
}

func (h *InvoiceHandler) listWithStatus(c *gin.Context, status string) {
	var filter ledgerapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.Status = status
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateInvoice
// @Summary      Update an invoice
// @Description  Updates number, client or issue date. Amount and kind are
// @Description  fixed at creation; moving the invoice to another client moves
// @Description  its balance contribution with it.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body ledgerapp.UpdateInvoiceRequest true "Invoice update request"
// @Success      200 {object} APIResponse[ledgerapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req ledgerapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Delete godoc
// @ID           deleteInvoice
// @Summary      Delete an invoice
// @Description  Deletes the invoice and reverts its balance contribution.
// @Description  Reconciliation history referencing it is kept.
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), invoiceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListReconciliations godoc
// @ID           listInvoiceReconciliations
// @Summary      List reconciliations of an invoice
// @Description  Returns every matching record where the invoice took part,
// @Description  on either side
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[[]ledgerapp.ReconciliationResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /invoices/{id}/reconciliations [get]
func (h *InvoiceHandler) ListReconciliations(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	recs, err := h.reconciliationService.ListByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, recs)
}

// ListReceipts godoc
// @ID           listInvoiceReceipts
// @Summary      List receipts of an invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[[]ledgerapp.ReceiptResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /invoices/{id}/receipts [get]
func (h *InvoiceHandler) ListReceipts(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	receipts, err := h.receiptService.ListByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipts)
}
