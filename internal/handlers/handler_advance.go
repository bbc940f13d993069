package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// advanceHandler handles HTTP requests for advances and their allocations.
type advanceHandler struct {
	advanceService portssvc.AdvanceSvcFacade
}

func newAdvanceHandler(as portssvc.AdvanceSvcFacade) *advanceHandler {
	return &advanceHandler{advanceService: as}
}

// registerAdvanceRoutes registers advance and allocation routes on a team group.
func registerAdvanceRoutes(group *gin.RouterGroup, advanceService portssvc.AdvanceSvcFacade) {
	h := newAdvanceHandler(advanceService)

	advances := group.Group("/advances")
	{
		advances.POST("", h.recordAdvance)
		advances.GET("", h.listAdvances)
		advances.GET("/:advance_id", h.getAdvance)
		advances.DELETE("/:advance_id", h.deleteAdvance)
		advances.POST("/:advance_id/allocations", h.allocateAdvance)
		advances.GET("/:advance_id/allocations", h.listAllocations)
	}

	allocations := group.Group("/allocations")
	{
		allocations.DELETE("/:allocation_id", h.reverseAllocation)
	}
}

// recordAdvance godoc
// @Summary Record an advance
// @Description Records an advance received from a customer or paid to a supplier, starting fully unallocated.
// @Tags advances
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param advance body dto.RecordAdvanceRequest true "Advance details"
// @Success 201 {object} dto.AdvanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/advances [post]
func (h *advanceHandler) recordAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")

	var req dto.RecordAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordAdvance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	advance, err := h.advanceService.RecordAdvance(c.Request.Context(), teamID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record advance")
		return
	}

	logger.Info("Advance recorded", slog.String("advance_id", advance.AdvanceID), slog.String("direction", string(advance.Direction)))
	c.JSON(http.StatusCreated, dto.ToAdvanceResponse(advance))
}

// listAdvances godoc
// @Summary List advances
// @Description Retrieves a team's advances, newest first with cursor pagination.
// @Tags advances
// @Produce json
// @Param team_id path string true "Team ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListAdvancesResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/advances [get]
func (h *advanceHandler) listAdvances(c *gin.Context) {
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

	advances, newToken, err := h.advanceService.ListAdvances(c.Request.Context(), teamID, userID, limit, nextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list advances")
		return
	}

	responses := make([]dto.AdvanceResponse, len(advances))
	for i, a := range advances {
		responses[i] = dto.ToAdvanceResponse(&a)
	}
	c.JSON(http.StatusOK, dto.ListAdvancesResponse{Advances: responses, NextToken: newToken})
}

// getAdvance godoc
// @Summary Get an advance
// @Description Retrieves an advance with its derived allocation state.
// @Tags advances
// @Produce json
// @Param team_id path string true "Team ID"
// @Param advance_id path string true "Advance ID"
// @Success 200 {object} dto.AdvanceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/advances/{advance_id} [get]
func (h *advanceHandler) getAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	advanceID := c.Param("advance_id")

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	advance, err := h.advanceService.GetAdvanceByID(c.Request.Context(), teamID, advanceID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve advance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdvanceResponse(advance))
}

// deleteAdvance godoc
// @Summary Delete an advance
// @Description Removes an advance that has no remaining allocations.
// @Tags advances
// @Produce json
// @Param team_id path string true "Team ID"
// @Param advance_id path string true "Advance ID"
// @Success 204 "Advance deleted"
// @Failure 400 {object} ErrorResponse "Advance still has allocations"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/advances/{advance_id} [delete]
func (h *advanceHandler) deleteAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	advanceID := c.Param("advance_id")

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	if err := h.advanceService.DeleteAdvance(c.Request.Context(), teamID, advanceID, userID); err != nil {
		respondError(c, logger, err, "Failed to delete advance")
		return
	}

	logger.Info("Advance deleted", slog.String("advance_id", advanceID))
	c.Status(http.StatusNoContent)
}

// allocateAdvance godoc
// @Summary Allocate an advance across documents
// @Description Applies an advance against one or more documents as a single all-or-nothing batch.
// @Tags advances
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param advance_id path string true "Advance ID"
// @Param allocation body dto.AllocateAdvanceRequest true "Allocation targets"
// @Success 201 {array} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse "Over-allocation or invalid target"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Locked period"
// @Security BearerAuth
// @Router /teams/{team_id}/advances/{advance_id}/allocations [post]
func (h *advanceHandler) allocateAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	advanceID := c.Param("advance_id")

	var req dto.AllocateAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AllocateAdvance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	allocations, err := h.advanceService.AllocateAdvance(c.Request.Context(), teamID, advanceID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to allocate advance")
		return
	}

	logger.Info("Advance allocated", slog.String("advance_id", advanceID), slog.Int("target_count", len(allocations)))
	c.JSON(http.StatusCreated, dto.ToAllocationResponses(allocations))
}

// listAllocations godoc
// @Summary List an advance's allocations
// @Tags advances
// @Produce json
// @Param team_id path string true "Team ID"
// @Param advance_id path string true "Advance ID"
// @Success 200 {array} dto.AllocationResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/advances/{advance_id}/allocations [get]
func (h *advanceHandler) listAllocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	advanceID := c.Param("advance_id")

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	allocations, err := h.advanceService.ListAllocationsByAdvance(c.Request.Context(), teamID, advanceID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list allocations")
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponses(allocations))
}

// reverseAllocation godoc
// @Summary Reverse an allocation
// @Description Removes an allocation, returning its amount to the advance's remainder. Pass force=true to override a locked period (admin only).
// @Tags advances
// @Produce json
// @Param team_id path string true "Team ID"
// @Param allocation_id path string true "Allocation ID"
// @Param force query bool false "Override a locked period (requires admin role)"
// @Success 204 "Allocation reversed"
// @Failure 403 {object} ErrorResponse "Override requires admin role"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Locked period"
// @Security BearerAuth
// @Router /teams/{team_id}/allocations/{allocation_id} [delete]
func (h *advanceHandler) reverseAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	allocationID := c.Param("allocation_id")
	overrideLock := c.Query("force") == "true"

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	if err := h.advanceService.ReverseAllocation(c.Request.Context(), teamID, allocationID, overrideLock, userID); err != nil {
		respondError(c, logger, err, "Failed to reverse allocation")
		return
	}

	logger.Info("Allocation reversed", slog.String("allocation_id", allocationID), slog.Bool("override_lock", overrideLock))
	c.Status(http.StatusNoContent)
}
