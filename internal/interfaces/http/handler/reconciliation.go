package handler

import (
	ledgerapp "github.com/cobranza/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReconciliationHandler handles reconciliation API endpoints
type ReconciliationHandler struct {
	BaseHandler
	reconciliationService *ledgerapp.ReconciliationService
	balanceService        *ledgerapp.BalanceService
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(
	reconciliationService *ledgerapp.ReconciliationService,
	balanceService *ledgerapp.BalanceService,
) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconciliationService: reconciliationService,
		balanceService:        balanceService,
	}
}

// RegisterRoutes registers reconciliation routes
func (h *ReconciliationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recs := rg.Group("/reconciliations")
	{
		recs.GET("", h.List)
	}
	rg.POST("/clients/:id/reconcile", h.Reconcile)
	rg.POST("/balances/recompute", h.RecomputeBalances)
}

// Reconcile godoc
// @ID           reconcileClient
// @Summary      Run a matching pass for a client
// @Description  Matches the client's open payments against its oldest open
// @Description  charges and records the applications. Normally this happens
// @Description  automatically when a payment is created; the endpoint exists
// @Description  for repair and for charges created against leftover payments.
// @Tags         reconciliations
// @Produce      json
// @Param        id path string true "Client ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.ReconcileResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /clients/{id}/reconcile [post]
func (h *ReconciliationHandler) Reconcile(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	result, err := h.reconciliationService.Reconcile(c.Request.Context(), clientID, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List godoc
// @ID           listReconciliations
// @Summary      List reconciliation records
// @Tags         reconciliations
// @Produce      json
// @Param        invoice_id query string false "Filter by invoice" format(uuid)
// @Param        client_id query string false "Filter by client" format(uuid)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]ledgerapp.ReconciliationResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /reconciliations [get]
func (h *ReconciliationHandler) List(c *gin.Context) {
	var filter ledgerapp.ReconciliationListFilter
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

	recs, total, err := h.reconciliationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, recs, total, filter.Page, filter.PageSize)
}

// RecomputeBalancesResponse reports the outcome of a balance repair pass
type RecomputeBalancesResponse struct {
	ClientsWritten int `json:"clients_written"`
}

// RecomputeBalances godoc
// @ID           recomputeBalances
// @Summary      Recompute every client balance
// @Description  Rebuilds all stored balances from invoice deltas in one
// @Description  transaction. Used to repair drift after manual intervention.
// @Tags         reconciliations
// @Produce      json
// @Success      200 {object} APIResponse[RecomputeBalancesResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /balances/recompute [post]
func (h *ReconciliationHandler) RecomputeBalances(c *gin.Context) {
	written, err := h.balanceService.RecomputeAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, RecomputeBalancesResponse{ClientsWritten: written})
}
