package handler

import (
	"github.com/gin-gonic/gin"

	appreport "github.com/tiendapro/backend/internal/application/report"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	BaseHandler
	reports *appreport.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *appreport.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes mounts report routes under /reports
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.GET("/dashboard", h.Dashboard)
	reports.GET("/provider-balances", h.ProviderBalances)
}

// Dashboard returns purchase and payment aggregates for a period.
// The period defaults to month-to-date.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	var filter appreport.DashboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	dashboard, err := h.reports.Dashboard(c.Request.Context(), orgID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// ProviderBalances returns outstanding balances per provider, largest first
func (h *ReportHandler) ProviderBalances(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	balances, err := h.reports.ProviderBalances(c.Request.Context(), orgID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balances)
}
