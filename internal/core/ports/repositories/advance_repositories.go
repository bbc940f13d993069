package repositories

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// AdvanceReader defines read operations for advance and allocation data
type AdvanceReader interface {
	// FindAdvanceByID retrieves an advance by ID.
	FindAdvanceByID(ctx context.Context, advanceID string) (*domain.Advance, error)

	// ListAdvancesByTeam retrieves a paginated list of a team's advances.
	ListAdvancesByTeam(ctx context.Context, teamID string, limit int, nextToken *string) ([]domain.Advance, *string, error)

	// FindAllocationByID retrieves an allocation by ID.
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.Allocation, error)

	// ListAllocationsByAdvance retrieves all allocations of an advance.
	ListAllocationsByAdvance(ctx context.Context, advanceID string) ([]domain.Allocation, error)

	// ListAllocationsByDocument retrieves all allocations applied to a document.
	ListAllocationsByDocument(ctx context.Context, documentID string) ([]domain.Allocation, error)
}

// AdvanceWriter defines write operations for advance and allocation data.
type AdvanceWriter interface {
	// SaveAdvance persists a new advance with the activity record.
	SaveAdvance(ctx context.Context, advance domain.Advance, activity domain.Activity) error

	// SaveAllocations atomically applies allocations from one advance to one
	// or more documents: the advance row is locked first, the remainder and
	// every target's due are re-checked under lock, allocation rows are
	// inserted, the remainder is decremented and every target balance is
	// recomputed. Nothing is persisted on any failure.
	// Returns apperrors.ErrOverAllocation when the re-check fails.
	SaveAllocations(ctx context.Context, advanceID string, allocations []domain.Allocation, activity domain.Activity) error

	// DeleteAllocation reverses one allocation: locks the advance and target
	// document, deletes the row, restores the remainder and recomputes the
	// target balance atomically.
	DeleteAllocation(ctx context.Context, allocation domain.Allocation, activity domain.Activity) error

	// DeleteAdvance removes an advance that has no remaining allocations.
	// Returns apperrors.ErrValidation if allocations still exist.
	DeleteAdvance(ctx context.Context, advance domain.Advance, activity domain.Activity) error
}

// AdvanceRepositoryFacade combines all advance-related repository interfaces
type AdvanceRepositoryFacade interface {
	AdvanceReader
	AdvanceWriter
}
