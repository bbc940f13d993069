package repositories

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// AdjustmentReader defines read operations for adjustment data
type AdjustmentReader interface {
	// FindAdjustmentByID retrieves an adjustment by ID.
	FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error)

	// ListAdjustmentsByDocument retrieves all adjustments on a document.
	ListAdjustmentsByDocument(ctx context.Context, documentID string) ([]domain.Adjustment, error)
}

// AdjustmentWriter defines write operations for adjustment data. Both methods
// lock the owning document row, mutate, recompute its balance and write the
// activity record within one database transaction.
type AdjustmentWriter interface {
	// SaveAdjustment inserts the adjustment and applies it to the balance.
	// Returns apperrors.ErrOverAllocation if the adjustment would drive the
	// document's due negative and negative due is disallowed.
	SaveAdjustment(ctx context.Context, adjustment domain.Adjustment, activity domain.Activity) error

	// DeleteAdjustment removes the adjustment and restores the prior due.
	DeleteAdjustment(ctx context.Context, adjustment domain.Adjustment, activity domain.Activity) error
}

// AdjustmentRepositoryFacade combines all adjustment-related repository interfaces
type AdjustmentRepositoryFacade interface {
	AdjustmentReader
	AdjustmentWriter
}
