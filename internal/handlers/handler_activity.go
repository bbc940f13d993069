package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// activityHandler handles HTTP requests for the activity log.
type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

func newActivityHandler(as portssvc.ActivitySvcFacade) *activityHandler {
	return &activityHandler{activityService: as}
}

// registerActivityRoutes registers activity log routes on a team group.
func registerActivityRoutes(group *gin.RouterGroup, activityService portssvc.ActivitySvcFacade) {
	h := newActivityHandler(activityService)

	activities := group.Group("/activities")
	{
		activities.GET("", h.listActivities)
	}
}

// listActivities godoc
// @Summary List activity log entries
// @Description Retrieves a team's audit trail, newest first with cursor pagination.
// @Tags activities
// @Produce json
// @Param team_id path string true "Team ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListActivitiesResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/activities [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	activities, newToken, err := h.activityService.ListActivities(c.Request.Context(), teamID, userID, limit, nextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list activities")
		return
	}

	c.JSON(http.StatusOK, dto.ListActivitiesResponse{
		Activities: dto.ToActivityResponses(activities),
		NextToken:  newToken,
	})
}
