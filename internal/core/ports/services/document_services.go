package services

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
)

// DocumentSvcFacade defines the lifecycle operations for invoices, supplier
// bills and quotations.
type DocumentSvcFacade interface {
	// CreateDocument creates a draft document with its line items. The total
	// is computed from the lines and balances start at zero.
	CreateDocument(ctx context.Context, teamID string, req dto.CreateDocumentRequest, creatorUserID string) (*domain.Document, error)

	// GetDocumentByID retrieves a document with its line items. IsLocked is
	// derived from the team's period locks at read time.
	GetDocumentByID(ctx context.Context, teamID string, documentID string, requestingUserID string) (*domain.Document, error)

	// ListDocuments retrieves documents for a team, filtered by kind and
	// status, newest document date first with cursor pagination.
	ListDocuments(ctx context.Context, teamID string, requestingUserID string, params dto.ListDocumentsParams) ([]domain.Document, *string, error)

	// UpdateDocument edits header fields and optionally replaces line items.
	// Only draft documents outside locked periods are editable.
	UpdateDocument(ctx context.Context, teamID string, documentID string, req dto.UpdateDocumentRequest, updatingUserID string) (*domain.Document, error)

	// TransitionDocument moves a document between statuses, enforcing the
	// per-kind transition graph.
	TransitionDocument(ctx context.Context, teamID string, documentID string, target domain.DocumentStatus, actingUserID string) (*domain.Document, error)

	// ConvertQuotation creates a new draft invoice copying an accepted
	// quotation's counterparty and line items. The quotation is left as is.
	ConvertQuotation(ctx context.Context, teamID string, quotationID string, actingUserID string) (*domain.Document, error)
}
