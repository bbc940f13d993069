package handlers

import (
	"net/http"

	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for derived reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers reporting routes on a team group.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/outstanding", h.getOutstandingSummary)
	}
}

// getOutstandingSummary godoc
// @Summary Outstanding balances summary
// @Description Aggregates open receivables, open payables and unallocated advance balances for the team.
// @Tags reports
// @Produce json
// @Param team_id path string true "Team ID"
// @Success 200 {object} dto.OutstandingSummaryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/reports/outstanding [get]
func (h *reportingHandler) getOutstandingSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	summary, err := h.reportingService.GetOutstandingSummary(c.Request.Context(), teamID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to build outstanding summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToOutstandingSummaryResponse(summary))
}
