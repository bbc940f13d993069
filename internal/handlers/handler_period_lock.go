package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodLockHandler handles HTTP requests for GST filing period locks.
type periodLockHandler struct {
	periodLockService portssvc.PeriodLockSvcFacade
}

func newPeriodLockHandler(ps portssvc.PeriodLockSvcFacade) *periodLockHandler {
	return &periodLockHandler{periodLockService: ps}
}

// registerPeriodLockRoutes registers period lock routes on a team group.
func registerPeriodLockRoutes(group *gin.RouterGroup, periodLockService portssvc.PeriodLockSvcFacade) {
	h := newPeriodLockHandler(periodLockService)

	periods := group.Group("/gst-periods")
	{
		periods.POST("", h.fileGstPeriod)
		periods.GET("", h.listPeriodLocks)
	}
}

// fileGstPeriod godoc
// @Summary File a GST period
// @Description Marks a filing period as filed, freezing balance mutations for documents dated inside it. Requires admin role.
// @Tags gst-periods
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param period body dto.FileGstPeriodRequest true "Period bounds"
// @Success 201 {object} dto.PeriodLockResponse
// @Failure 400 {object} ErrorResponse "Invalid bounds or overlapping period"
// @Failure 403 {object} ErrorResponse "Requires admin role"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/gst-periods [post]
func (h *periodLockHandler) fileGstPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")

	var req dto.FileGstPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for FileGstPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	lock, err := h.periodLockService.FileGstPeriod(c.Request.Context(), teamID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to file GST period")
		return
	}

	logger.Info("GST period filed", slog.String("period_lock_id", lock.PeriodLockID),
		slog.Time("period_start", lock.PeriodStart), slog.Time("period_end", lock.PeriodEnd))
	c.JSON(http.StatusCreated, dto.ToPeriodLockResponse(lock))
}

// listPeriodLocks godoc
// @Summary List filed GST periods
// @Tags gst-periods
// @Produce json
// @Param team_id path string true "Team ID"
// @Success 200 {array} dto.PeriodLockResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/gst-periods [get]
func (h *periodLockHandler) listPeriodLocks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	locks, err := h.periodLockService.ListPeriodLocks(c.Request.Context(), teamID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list GST periods")
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodLockResponses(locks))
}
