package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
)

const defaultListLimit = 20
const maxListLimit = 100

// documentService provides document lifecycle operations.
type documentService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	teamSvc      portssvc.TeamAuthorizerSvc
	lockSvc      portssvc.PeriodLockSvcFacade
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, teamSvc portssvc.TeamAuthorizerSvc, lockSvc portssvc.PeriodLockSvcFacade) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		teamSvc:      teamSvc,
		lockSvc:      lockSvc,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// buildLineItems validates and converts requested lines, returning the lines
// and their total. Each line's amount is quantity * unitPrice.
func buildLineItems(documentID string, reqLines []dto.CreateLineItemRequest) ([]domain.LineItem, decimal.Decimal, error) {
	lines := make([]domain.LineItem, len(reqLines))
	total := decimal.Zero
	for i, lr := range reqLines {
		if lr.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: line %d quantity must be positive", apperrors.ErrValidation, i)
		}
		if lr.UnitPrice.LessThan(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: line %d unit price must not be negative", apperrors.ErrValidation, i)
		}
		amount := lr.Quantity.Mul(lr.UnitPrice)
		lines[i] = domain.LineItem{
			LineItemID:  uuid.NewString(),
			DocumentID:  documentID,
			Description: lr.Description,
			Quantity:    lr.Quantity,
			UnitPrice:   lr.UnitPrice,
			Amount:      amount,
		}
		total = total.Add(amount)
	}
	return lines, total, nil
}

// CreateDocument creates a draft document with its line items.
func (s *documentService) CreateDocument(ctx context.Context, teamID string, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, creatorUserID, teamID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreateDocument", slog.String("user_id", creatorUserID), slog.String("team_id", teamID))
		return nil, err
	}

	// A document dated inside a filed period could never be mutated again.
	if err := s.lockSvc.AssertDateMutable(ctx, teamID, req.DocumentDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	documentID := uuid.NewString()

	lines, total, err := buildLineItems(documentID, req.LineItems)
	if err != nil {
		return nil, err
	}

	doc := domain.Document{
		DocumentID:     documentID,
		TeamID:         teamID,
		Kind:           req.Kind,
		CounterpartyID: req.CounterpartyID,
		DocumentNumber: req.DocumentNumber,
		DocumentDate:   req.DocumentDate,
		CurrencyCode:   req.CurrencyCode,
		TotalAmount:    total,
		AmountPaid:     decimal.Zero,
		AmountDue:      total,
		Status:         domain.StatusDraft,
		PaymentStatus:  domain.PaymentUnpaid,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, doc, lines); err != nil {
		logger.Error("Failed to save document", slog.String("error", err.Error()), slog.String("team_id", teamID))
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	logger.Info("Document created", slog.String("document_id", doc.DocumentID), slog.String("kind", string(doc.Kind)), slog.String("team_id", teamID))
	doc.LineItems = lines
	return &doc, nil
}

// findTeamDocument fetches a document and verifies tenant ownership. The
// tenant check maps misses to ErrNotFound so existence is not leaked across
// teams.
func (s *documentService) findTeamDocument(ctx context.Context, teamID, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	if doc.TeamID != teamID {
		return nil, apperrors.ErrNotFound
	}
	return doc, nil
}

// deriveLock populates IsLocked from the team's filed periods.
func (s *documentService) deriveLock(ctx context.Context, doc *domain.Document) error {
	err := s.lockSvc.AssertDateMutable(ctx, doc.TeamID, doc.DocumentDate)
	if err == nil {
		doc.IsLocked = false
		return nil
	}
	if errors.Is(err, apperrors.ErrLockedPeriod) {
		doc.IsLocked = true
		return nil
	}
	return err
}

// GetDocumentByID retrieves a document with lines and derived lock state.
func (s *documentService) GetDocumentByID(ctx context.Context, teamID string, documentID string, requestingUserID string) (*domain.Document, error) {
	if err := s.teamSvc.AuthorizeTeamAction(ctx, requestingUserID, teamID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	doc, err := s.findTeamDocument(ctx, teamID, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.deriveLock(ctx, doc); err != nil {
		return nil, err
	}

	lines, err := s.documentRepo.FindLineItemsByDocumentID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items for document %s: %w", documentID, err)
	}
	doc.LineItems = lines
	return doc, nil
}

// ListDocuments retrieves a team's documents newest first.
func (s *documentService) ListDocuments(ctx context.Context, teamID string, requestingUserID string, params dto.ListDocumentsParams) ([]domain.Document, *string, error) {
	if err := s.teamSvc.AuthorizeTeamAction(ctx, requestingUserID, teamID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	filter := portsrepo.DocumentListFilter{Kind: params.Kind, Status: params.Status}
	docs, nextToken, err := s.documentRepo.ListDocumentsByTeam(ctx, teamID, filter, limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list documents", slog.String("error", err.Error()), slog.String("team_id", teamID))
		return nil, nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nextToken, nil
}

// UpdateDocument edits a draft document's header and optionally replaces its
// line items.
func (s *documentService) UpdateDocument(ctx context.Context, teamID string, documentID string, req dto.UpdateDocumentRequest, updatingUserID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, updatingUserID, teamID, domain.RoleMember); err != nil {
		return nil, err
	}

	doc, err := s.findTeamDocument(ctx, teamID, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.deriveLock(ctx, doc); err != nil {
		return nil, err
	}
	if !doc.IsEditable() {
		if doc.IsLocked {
			return nil, fmt.Errorf("%w: document %s is dated in a filed GST period", apperrors.ErrLockedDocument, documentID)
		}
		return nil, fmt.Errorf("%w: document %s is not a draft", apperrors.ErrInvalidTransition, documentID)
	}

	if req.DocumentNumber != nil {
		doc.DocumentNumber = *req.DocumentNumber
	}
	if req.Notes != nil {
		doc.Notes = *req.Notes
	}
	if req.DocumentDate != nil {
		// The new date must not move the document into a filed period.
		if err := s.lockSvc.AssertDateMutable(ctx, teamID, *req.DocumentDate); err != nil {
			return nil, err
		}
		doc.DocumentDate = *req.DocumentDate
	}

	now := time.Now().UTC()
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = updatingUserID

	if len(req.LineItems) > 0 {
		lines, total, err := buildLineItems(documentID, req.LineItems)
		if err != nil {
			return nil, err
		}
		doc.TotalAmount = total
		doc.AmountDue = total.Sub(doc.AmountPaid)
		if err := s.documentRepo.ReplaceDocumentLines(ctx, *doc, lines); err != nil {
			logger.Error("Failed to replace document lines", slog.String("error", err.Error()), slog.String("document_id", documentID))
			return nil, fmt.Errorf("failed to replace document lines: %w", err)
		}
		doc.LineItems = lines
	} else {
		if err := s.documentRepo.UpdateDocumentDetails(ctx, *doc); err != nil {
			logger.Error("Failed to update document", slog.String("error", err.Error()), slog.String("document_id", documentID))
			return nil, fmt.Errorf("failed to update document: %w", err)
		}
	}

	logger.Info("Document updated", slog.String("document_id", documentID), slog.String("team_id", teamID))
	return doc, nil
}

// TransitionDocument applies a manual status change.
func (s *documentService) TransitionDocument(ctx context.Context, teamID string, documentID string, target domain.DocumentStatus, actingUserID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, actingUserID, teamID, domain.RoleMember); err != nil {
		return nil, err
	}

	doc, err := s.findTeamDocument(ctx, teamID, documentID)
	if err != nil {
		return nil, err
	}

	if !doc.CanTransition(target) {
		return nil, fmt.Errorf("%w: %s -> %s not allowed for %s", apperrors.ErrInvalidTransition, doc.Status, target, doc.Kind)
	}
	if target == domain.StatusIssued && doc.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: cannot issue a document with non-positive total", apperrors.ErrValidation)
	}
	// Status changes move the ledger; documents in filed periods stay frozen.
	if err := s.lockSvc.AssertDateMutable(ctx, teamID, doc.DocumentDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	activity := domain.Activity{
		ActivityID: uuid.NewString(),
		TeamID:     teamID,
		ActorID:    actingUserID,
		Action:     domain.ActionStatusChange,
		EntityKind: "document",
		EntityID:   documentID,
		Detail:     fmt.Sprintf("%s -> %s", doc.Status, target),
		CreatedAt:  now,
	}

	if err := s.documentRepo.UpdateDocumentStatus(ctx, documentID, target, actingUserID, now, activity); err != nil {
		logger.Error("Failed to update document status", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to update document status: %w", err)
	}

	logger.Info("Document status changed", slog.String("document_id", documentID), slog.String("from", string(doc.Status)), slog.String("to", string(target)))
	doc.Status = target
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = actingUserID
	return doc, nil
}

// ConvertQuotation copies an accepted quotation into a fresh draft invoice.
// The invoice starts its own balance lifecycle; the quotation is left as is.
func (s *documentService) ConvertQuotation(ctx context.Context, teamID string, quotationID string, actingUserID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, actingUserID, teamID, domain.RoleMember); err != nil {
		return nil, err
	}

	quotation, err := s.findTeamDocument(ctx, teamID, quotationID)
	if err != nil {
		return nil, err
	}
	if quotation.Kind != domain.KindQuotation {
		return nil, fmt.Errorf("%w: document %s is not a quotation", apperrors.ErrValidation, quotationID)
	}
	if quotation.Status != domain.StatusAccepted {
		return nil, fmt.Errorf("%w: only accepted quotations convert to invoices", apperrors.ErrInvalidTransition)
	}

	quoteLines, err := s.documentRepo.FindLineItemsByDocumentID(ctx, quotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quotation lines: %w", err)
	}

	now := time.Now().UTC()
	invoiceID := uuid.NewString()
	lines := make([]domain.LineItem, len(quoteLines))
	total := decimal.Zero
	for i, ql := range quoteLines {
		lines[i] = domain.LineItem{
			LineItemID:  uuid.NewString(),
			DocumentID:  invoiceID,
			Description: ql.Description,
			Quantity:    ql.Quantity,
			UnitPrice:   ql.UnitPrice,
			Amount:      ql.Amount,
		}
		total = total.Add(ql.Amount)
	}

	invoice := domain.Document{
		DocumentID:     invoiceID,
		TeamID:         teamID,
		Kind:           domain.KindInvoice,
		CounterpartyID: quotation.CounterpartyID,
		DocumentNumber: quotation.DocumentNumber + "-INV",
		DocumentDate:   now,
		CurrencyCode:   quotation.CurrencyCode,
		TotalAmount:    total,
		AmountPaid:     decimal.Zero,
		AmountDue:      total,
		Status:         domain.StatusDraft,
		PaymentStatus:  domain.PaymentUnpaid,
		Notes:          quotation.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, invoice, lines); err != nil {
		logger.Error("Failed to save converted invoice", slog.String("error", err.Error()), slog.String("quotation_id", quotationID))
		return nil, fmt.Errorf("failed to save converted invoice: %w", err)
	}

	logger.Info("Quotation converted to invoice", slog.String("quotation_id", quotationID), slog.String("invoice_id", invoiceID))
	invoice.LineItems = lines
	return &invoice, nil
}
