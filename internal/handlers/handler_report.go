package handlers

import (
	"net/http"

	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/ecclesiahq/church_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler serves the period report.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

func newReportHandler(reportService portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: reportService}
}

// getReport godoc
// @Summary Period report
// @Description Totals, per-counterparty sums and a chronological month breakdown for a window; recurring charges are prorated from their definitions
// @Tags reports
// @Produce json
// @Param churchID path string true "Church ID"
// @Param start query string true "Window start (YYYY-MM-DD)"
// @Param end query string true "Window end (YYYY-MM-DD)"
// @Param counterpartyID query string false "Counterparty filter"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Security BearerAuth
// @Router /churches/{churchID}/reports/period [get]
func (h *reportHandler) getReport(c *gin.Context) {
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: start and end are required as YYYY-MM-DD"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.reportService.Report(c.Request.Context(), c.Param("churchID"), userID, params)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerReportRoutes registers report routes
func registerReportRoutes(group *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	reportHandler := newReportHandler(reportService)

	reports := group.Group("/reports")
	{
		reports.GET("/period", reportHandler.getReport)
	}
}
