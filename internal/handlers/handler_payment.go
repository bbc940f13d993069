package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests for direct payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers payment specific routes on a team group.
func registerPaymentRoutes(group *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := group.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.DELETE("/:payment_id", h.deletePayment)
	}
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records a payment against an issued invoice or supplier bill and recomputes its balances.
// @Tags payments
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse "Invalid amount or overpayment"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Locked period or document not payable"
// @Security BearerAuth
// @Router /teams/{team_id}/payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), teamID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("payment_id", payment.PaymentID), slog.String("document_id", payment.DocumentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// deletePayment godoc
// @Summary Delete a payment
// @Description Removes a payment and recomputes the document's balances. Paid documents reopen to issued.
// @Tags payments
// @Produce json
// @Param team_id path string true "Team ID"
// @Param payment_id path string true "Payment ID"
// @Success 204 "Payment deleted"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Locked period"
// @Security BearerAuth
// @Router /teams/{team_id}/payments/{payment_id} [delete]
func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	paymentID := c.Param("payment_id")

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	if err := h.paymentService.DeletePayment(c.Request.Context(), teamID, paymentID, userID); err != nil {
		respondError(c, logger, err, "Failed to delete payment")
		return
	}

	logger.Info("Payment deleted", slog.String("payment_id", paymentID))
	c.Status(http.StatusNoContent)
}
