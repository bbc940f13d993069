package handlers

import (
	"log/slog"
	"net/http"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests for invoices, supplier bills and
// quotations. Payments and adjustments listing is exposed under the document
// resource because both are scoped to one document.
type documentHandler struct {
	documentService   portssvc.DocumentSvcFacade
	paymentService    portssvc.PaymentSvcFacade
	adjustmentService portssvc.AdjustmentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, ps portssvc.PaymentSvcFacade, as portssvc.AdjustmentSvcFacade) *documentHandler {
	return &documentHandler{
		documentService:   ds,
		paymentService:    ps,
		adjustmentService: as,
	}
}

// RegisterDocumentRoutes registers document specific routes on a team group.
// Exported so handler tests can mount the routes with mocked services.
func RegisterDocumentRoutes(group *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, paymentService portssvc.PaymentSvcFacade, adjustmentService portssvc.AdjustmentSvcFacade) {
	h := newDocumentHandler(documentService, paymentService, adjustmentService)

	documents := group.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:document_id", h.getDocument)
		documents.PUT("/:document_id", h.updateDocument)
		documents.POST("/:document_id/transition", h.transitionDocument)
		documents.POST("/:document_id/convert", h.convertQuotation)
		documents.GET("/:document_id/payments", h.listDocumentPayments)
		documents.GET("/:document_id/adjustments", h.listDocumentAdjustments)
	}
}

// requestUserID pulls the authenticated user ID or writes a 401.
func requestUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// createDocument godoc
// @Summary Create a document
// @Description Creates a draft invoice, supplier bill or quotation with its line items.
// @Tags documents
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate document number or locked period"
// @Security BearerAuth
// @Router /teams/{team_id}/documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), teamID, req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create document")
		return
	}

	logger.Info("Document created", slog.String("document_id", doc.DocumentID), slog.String("kind", string(doc.Kind)))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List documents
// @Description Retrieves team documents filtered by kind and status, newest first.
// @Tags documents
// @Produce json
// @Param team_id path string true "Team ID"
// @Param kind query string false "Filter by kind" Enums(INVOICE, SUPPLIER_BILL, QUOTATION)
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")

	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListDocuments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	docs, nextToken, err := h.documentService.ListDocuments(c.Request.Context(), teamID, userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list documents")
		return
	}

	responses := make([]dto.DocumentResponse, len(docs))
	for i, d := range docs {
		responses[i] = dto.ToDocumentResponse(&d)
	}
	c.JSON(http.StatusOK, dto.ListDocumentsResponse{Documents: responses, NextToken: nextToken})
}

// getDocument godoc
// @Summary Get a document
// @Description Retrieves a document with its line items and derived lock state.
// @Tags documents
// @Produce json
// @Param team_id path string true "Team ID"
// @Param document_id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/documents/{document_id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	documentID := c.Param("document_id")

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), teamID, documentID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve document")
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// updateDocument godoc
// @Summary Update a draft document
// @Description Edits header fields and optionally replaces line items. Only drafts outside locked periods.
// @Tags documents
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param document_id path string true "Document ID"
// @Param document body dto.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not a draft or locked period"
// @Security BearerAuth
// @Router /teams/{team_id}/documents/{document_id} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	documentID := c.Param("document_id")

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), teamID, documentID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update document")
		return
	}

	logger.Info("Document updated", slog.String("document_id", documentID))
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// transitionDocument godoc
// @Summary Transition a document's status
// @Description Applies a manual status change following the per-kind transition graph.
// @Tags documents
// @Accept json
// @Produce json
// @Param team_id path string true "Team ID"
// @Param document_id path string true "Document ID"
// @Param transition body dto.TransitionDocumentRequest true "Target status"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transition not allowed"
// @Security BearerAuth
// @Router /teams/{team_id}/documents/{document_id}/transition [post]
func (h *documentHandler) transitionDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	documentID := c.Param("document_id")

	var req dto.TransitionDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	doc, err := h.documentService.TransitionDocument(c.Request.Context(), teamID, documentID, domain.DocumentStatus(req.Status), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to transition document")
		return
	}

	logger.Info("Document transitioned", slog.String("document_id", documentID), slog.String("status", string(doc.Status)))
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// convertQuotation godoc
// @Summary Convert an accepted quotation to a draft invoice
// @Description Creates a new draft invoice copying the quotation's counterparty and lines.
// @Tags documents
// @Produce json
// @Param team_id path string true "Team ID"
// @Param document_id path string true "Quotation ID"
// @Success 201 {object} dto.DocumentResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Quotation not accepted"
// @Security BearerAuth
// @Router /teams/{team_id}/documents/{document_id}/convert [post]
func (h *documentHandler) convertQuotation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	quotationID := c.Param("document_id")

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	invoice, err := h.documentService.ConvertQuotation(c.Request.Context(), teamID, quotationID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to convert quotation")
		return
	}

	logger.Info("Quotation converted to invoice", slog.String("quotation_id", quotationID), slog.String("invoice_id", invoice.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(invoice))
}

// listDocumentPayments godoc
// @Summary List a document's payments
// @Tags payments
// @Produce json
// @Param team_id path string true "Team ID"
// @Param document_id path string true "Document ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/documents/{document_id}/payments [get]
func (h *documentHandler) listDocumentPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	documentID := c.Param("document_id")

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPaymentsByDocument(c.Request.Context(), teamID, documentID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list payments")
		return
	}

	responses := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = dto.ToPaymentResponse(&p)
	}
	c.JSON(http.StatusOK, responses)
}

// listDocumentAdjustments godoc
// @Summary List a document's adjustments
// @Tags adjustments
// @Produce json
// @Param team_id path string true "Team ID"
// @Param document_id path string true "Document ID"
// @Success 200 {array} dto.AdjustmentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{team_id}/documents/{document_id}/adjustments [get]
func (h *documentHandler) listDocumentAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	teamID := c.Param("team_id")
	documentID := c.Param("document_id")

	userID, ok := requestUserID(c, logger)
	if !ok {
		return
	}

	adjustments, err := h.adjustmentService.ListAdjustmentsByDocument(c.Request.Context(), teamID, documentID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list adjustments")
		return
	}

	responses := make([]dto.AdjustmentResponse, len(adjustments))
	for i, a := range adjustments {
		responses[i] = dto.ToAdjustmentResponse(&a)
	}
	c.JSON(http.StatusOK, responses)
}
