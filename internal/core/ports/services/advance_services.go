package services

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
)

// AdvanceSvcFacade defines advance payment and allocation operations.
type AdvanceSvcFacade interface {
	// RecordAdvance records an advance received from a customer or paid to a
	// supplier, starting fully unallocated.
	RecordAdvance(ctx context.Context, teamID string, req dto.RecordAdvanceRequest, actingUserID string) (*domain.Advance, error)

	// GetAdvanceByID retrieves an advance with its derived allocation state.
	GetAdvanceByID(ctx context.Context, teamID string, advanceID string, requestingUserID string) (*domain.Advance, error)

	// ListAdvances retrieves a team's advances, newest first with cursor
	// pagination.
	ListAdvances(ctx context.Context, teamID string, requestingUserID string, limit int, nextToken *string) ([]domain.Advance, *string, error)

	// AllocateAdvance applies an advance against one or more documents.
	// The whole batch succeeds or fails together: the sum must not exceed the
	// advance's remainder and each slice must not exceed its document's
	// amount due.
	AllocateAdvance(ctx context.Context, teamID string, advanceID string, req dto.AllocateAdvanceRequest, actingUserID string) ([]domain.Allocation, error)

	// ReverseAllocation removes an allocation and returns its amount to the
	// advance's unallocated remainder. Reversals against documents in a
	// locked period require overrideLock.
	ReverseAllocation(ctx context.Context, teamID string, allocationID string, overrideLock bool, actingUserID string) error

	// DeleteAdvance removes an advance that has no remaining allocations.
	DeleteAdvance(ctx context.Context, teamID string, advanceID string, actingUserID string) error

	// ListAllocationsByAdvance retrieves an advance's allocations.
	ListAllocationsByAdvance(ctx context.Context, teamID string, advanceID string, requestingUserID string) ([]domain.Allocation, error)
}
