package handler

import (
	ledgerapp "github.com/cobranza/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptHandler handles receipt API endpoints
type ReceiptHandler struct {
	BaseHandler
	receiptService *ledgerapp.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *ledgerapp.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// RegisterRoutes registers receipt routes
func (h *ReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.Create)
		receipts.GET("/:id", h.GetByID)
		receipts.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @ID           createReceipt
// @Summary      Record a receipt against an invoice
// @Description  Creates the receipt and returns a presigned URL for uploading
// @Description  the voucher document
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.CreateReceiptRequest true "Receipt creation request"
// @Success      201 {object} APIResponse[ledgerapp.ReceiptResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// GetByID godoc
// @ID           getReceiptById
// @Summary      Get receipt by ID
// @Description  Returns the receipt with a presigned voucher download URL
// @Description  when the voucher has been uploaded
// @Tags         receipts
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.ReceiptResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), receiptID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// Delete godoc
// @ID           deleteReceipt
// @Summary      Delete a receipt
// @Description  Removes the receipt and its voucher object from storage
// @Tags         receipts
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), receiptID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
