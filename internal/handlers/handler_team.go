package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// teamHandler handles HTTP requests related to teams and their members.
type teamHandler struct {
	teamService portssvc.TeamSvcFacade
}

func newTeamHandler(ts portssvc.TeamSvcFacade) *teamHandler {
	return &teamHandler{teamService: ts}
}

// registerTeamRoutes registers routes for teams and their members, and nests
// all team-scoped ledger routes under a specific team.
func registerTeamRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTeamHandler(services.Team)

	teamsTopLevel := rg.Group("/teams")
	{
		teamsTopLevel.POST("", h.createTeam)
		teamsTopLevel.GET("", h.listUserTeams)
	}

	teamSpecific := rg.Group("/teams/:team_id")
	{
		teamSpecific.GET("", h.getTeam)

		teamUsers := teamSpecific.Group("/users")
		{
			teamUsers.POST("", h.addUserToTeam)
		}

		RegisterDocumentRoutes(teamSpecific, services.Document, services.Payment, services.Adjustment)
		registerPaymentRoutes(teamSpecific, services.Payment)
		registerAdjustmentRoutes(teamSpecific, services.Adjustment)
		registerAdvanceRoutes(teamSpecific, services.Advance)
		registerPeriodLockRoutes(teamSpecific, services.PeriodLock)
		registerActivityRoutes(teamSpecific, services.Activity)
		registerReportingRoutes(teamSpecific, services.Reporting)
	}
}

// createTeam godoc
// @Summary Create a new team
// @Description Creates a new team and assigns the creator as admin.
// @Tags teams
// @Accept json
// @Produce json
// @Param team body dto.CreateTeamRequest true "Team details"
// @Success 201 {object} dto.TeamResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams [post]
func (h *teamHandler) createTeam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTeam", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))

	newTeam, err := h.teamService.CreateTeam(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create team")
		return
	}

	logger.Info("Team created successfully", slog.String("team_id", newTeam.TeamID))
	c.JSON(http.StatusCreated, dto.ToTeamResponse(newTeam))
}

// listUserTeams godoc
// @Summary List teams for current user
// @Description Retrieves the teams the authenticated user belongs to.
// @Tags teams
// @Produce json
// @Success 200 {object} dto.ListTeamsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams [get]
func (h *teamHandler) listUserTeams(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	teams, err := h.teamService.ListUserTeams(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list teams")
		return
	}

	c.JSON(http.StatusOK, dto.ListTeamsResponse{Teams: dto.ToTeamResponses(teams)})
}

// getTeam godoc
// @Summary Get a team
// @Description Retrieves a team the authenticated user belongs to.
// @Tags teams
// @Produce json
// @Param team_id path string true "Team ID"
// @Success 200 {object} dto.TeamResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id} [get]
func (h *teamHandler) getTeam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	team, err := h.teamService.FindTeamByID(c.Request.Context(), teamID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve team")
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// addUserToTeam godoc
// @Summary Add a user to a team
// @Description Adds a user to the team with a role. Requires admin role.
// @Tags teams
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param member body dto.AddTeamMemberRequest true "Member details"
// @Success 204 "Member added"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "User already a member"
// @Security BearerAuth
// @Router /teams/{team_id}/users [post]
func (h *teamHandler) addUserToTeam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")

	var req dto.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddUserToTeam", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.teamService.AddUserToTeam(c.Request.Context(), addingUserID, teamID, req); err != nil {
		respondError(c, logger, err, "Failed to add member to team")
		return
	}

	logger.Info("Member added to team", slog.String("team_id", teamID), slog.String("user_id", req.UserID))
	c.Status(http.StatusNoContent)
}
