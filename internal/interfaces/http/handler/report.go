package handler

import (
	ledgerapp "github.com/cobranza/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *ledgerapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *ledgerapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/aging", h.Aging)
	}
}

// Aging godoc
// @ID           getAgingReport
// @Summary      Aging report of open invoices
// @Description  Buckets every open invoice by elapsed time since creation.
// @Description  Bucket boundaries are configurable per request and never
// @Description  stored; b2 and b3 are forced strictly increasing.
// @Tags         reports
// @Produce      json
// @Param        b1 query int false "First boundary in minutes" default(60)
// @Param        b2 query int false "Second boundary in minutes" default(120)
// @Param        b3 query int false "Third boundary in minutes" default(180)
// @Success      200 {object} APIResponse[ledgerapp.AgingReport]
// @Failure      400 {object} ErrorResponse
// @Router       /reports/aging [get]
func (h *ReportHandler) Aging(c *gin.Context) {
	var filter ledgerapp.AgingReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.reportService.Aging(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
