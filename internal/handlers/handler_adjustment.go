package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adjustmentHandler handles HTTP requests for balance adjustments.
type adjustmentHandler struct {
	adjustmentService portssvc.AdjustmentSvcFacade
}

func newAdjustmentHandler(as portssvc.AdjustmentSvcFacade) *adjustmentHandler {
	return &adjustmentHandler{adjustmentService: as}
}

// registerAdjustmentRoutes registers adjustment specific routes on a team group.
func registerAdjustmentRoutes(group *gin.RouterGroup, adjustmentService portssvc.AdjustmentSvcFacade) {
	h := newAdjustmentHandler(adjustmentService)

	adjustments := group.Group("/adjustments")
	{
		adjustments.POST("", h.createAdjustment)
		adjustments.DELETE("/:adjustment_id", h.deleteAdjustment)
	}
}

// createAdjustment godoc
// @Summary Create an adjustment
// @Description Applies a credit note, debit note, discount or charge to a document's balance.
// @Tags adjustments
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param adjustment body dto.CreateAdjustmentRequest true "Adjustment details"
// @Success 201 {object} dto.AdjustmentResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or balance would go negative"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Locked period or document not adjustable"
// @Security BearerAuth
// @Router /teams/{team_id}/adjustments [post]
func (h *adjustmentHandler) createAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")

	var req dto.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	adjustment, err := h.adjustmentService.CreateAdjustment(c.Request.Context(), teamID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create adjustment")
		return
	}

	logger.Info("Adjustment created", slog.String("adjustment_id", adjustment.AdjustmentID), slog.String("document_id", adjustment.DocumentID))
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adjustment))
}

// deleteAdjustment godoc
// @Summary Delete an adjustment
// @Description Removes an adjustment and recomputes the document's balances.
// @Tags adjustments
// @Produce json
// @Param team_id path string true "Team ID"
// @Param adjustment_id path string true "Adjustment ID"
// @Success 204 "Adjustment deleted"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Locked period"
// @Security BearerAuth
// @Router /teams/{team_id}/adjustments/{adjustment_id} [delete]
func (h *adjustmentHandler) deleteAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	adjustmentID := c.Param("adjustment_id")

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	if err := h.adjustmentService.DeleteAdjustment(c.Request.Context(), teamID, adjustmentID, userID); err != nil {
		respondError(c, logger, err, "Failed to delete adjustment")
		return
	}

	logger.Info("Adjustment deleted", slog.String("adjustment_id", adjustmentID))
	c.Status(http.StatusNoContent)
}
