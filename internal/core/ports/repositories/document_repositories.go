package repositories

import (
	"context"
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// DocumentListFilter narrows ListDocumentsByTeam.
type DocumentListFilter struct {
	Kind   *domain.DocumentKind
	Status *domain.DocumentStatus
}

// DocumentReader defines read operations for document data
type DocumentReader interface {
	// FindDocumentByID retrieves a document without line items. Returns
	// apperrors.ErrNotFound for missing rows.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// FindLineItemsByDocumentID retrieves the line items of a document.
	FindLineItemsByDocumentID(ctx context.Context, documentID string) ([]domain.LineItem, error)

	// ListDocumentsByTeam retrieves a paginated list of documents using
	// token-based cursor pagination ordered by document date.
	ListDocumentsByTeam(ctx context.Context, teamID string, filter DocumentListFilter, limit int, nextToken *string) ([]domain.Document, *string, error)
}

// DocumentWriter defines write operations for document data
type DocumentWriter interface {
	// SaveDocument persists a new draft document with its line items atomically.
	SaveDocument(ctx context.Context, document domain.Document, lines []domain.LineItem) error

	// ReplaceDocumentLines replaces a draft document's line items and total
	// amount within a transaction, recomputing the balance columns.
	ReplaceDocumentLines(ctx context.Context, document domain.Document, lines []domain.LineItem) error

	// UpdateDocumentDetails updates non-monetary header fields.
	UpdateDocumentDetails(ctx context.Context, document domain.Document) error

	// UpdateDocumentStatus applies a status change, recording the activity row
	// in the same transaction.
	UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, userID string, at time.Time, activity domain.Activity) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
