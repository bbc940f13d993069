package services

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
)

// AdjustmentSvcFacade defines balance adjustment operations (credit notes,
// debit notes, discounts, charges).
type AdjustmentSvcFacade interface {
	// CreateAdjustment applies a signed adjustment to a document's balance.
	// The sign is derived from the adjustment type; OTHER carries the sign
	// the caller supplies.
	CreateAdjustment(ctx context.Context, teamID string, req dto.CreateAdjustmentRequest, actingUserID string) (*domain.Adjustment, error)

	// DeleteAdjustment removes an adjustment and recomputes the document's
	// balances.
	DeleteAdjustment(ctx context.Context, teamID string, adjustmentID string, actingUserID string) error

	// ListAdjustmentsByDocument retrieves a document's adjustments, newest
	// first.
	ListAdjustmentsByDocument(ctx context.Context, teamID string, documentID string, requestingUserID string) ([]domain.Adjustment, error)
}
