package dto

import (
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordAdvanceRequest records a pre-payment from a customer or to a supplier.
type RecordAdvanceRequest struct {
	CounterpartyID string                  `json:"counterpartyID" binding:"required"`
	Direction      domain.AdvanceDirection `json:"direction" binding:"required,oneof=RECEIVED PAID"`
	Amount         decimal.Decimal         `json:"amount" binding:"required"`
	AdvanceDate    time.Time               `json:"advanceDate" binding:"required"`
	Notes          string                  `json:"notes"`
}

// AllocationTargetRequest is one target document of an allocation.
type AllocationTargetRequest struct {
	DocumentID string          `json:"documentID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// AllocateAdvanceRequest distributes part of an advance's remainder across
// one or more documents, all-or-nothing.
type AllocateAdvanceRequest struct {
	Targets []AllocationTargetRequest `json:"targets" binding:"required,min=1,dive"`
}

// AdvanceResponse is the returned form of an advance.
type AdvanceResponse struct {
	AdvanceID         string                  `json:"advanceID"`
	CounterpartyID    string                  `json:"counterpartyID"`
	Direction         domain.AdvanceDirection `json:"direction"`
	TotalAmount       decimal.Decimal         `json:"totalAmount"`
	UnallocatedAmount decimal.Decimal         `json:"unallocatedAmount"`
	State             domain.AdvanceState     `json:"state"`
	AdvanceDate       time.Time               `json:"advanceDate"`
	Notes             string                  `json:"notes"`
	CreatedAt         time.Time               `json:"createdAt"`
	CreatedBy         string                  `json:"createdBy"`
}

// AllocationResponse is the returned form of an allocation.
type AllocationResponse struct {
	AllocationID string          `json:"allocationID"`
	AdvanceID    string          `json:"advanceID"`
	DocumentID   string          `json:"documentID"`
	Amount       decimal.Decimal `json:"amount"`
	AllocatedAt  time.Time       `json:"allocatedAt"`
}

// ListAdvancesResponse wraps a page of advances with a continuation token.
type ListAdvancesResponse struct {
	Advances  []AdvanceResponse `json:"advances"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToAdvanceResponse converts a domain.Advance to AdvanceResponse DTO.
func ToAdvanceResponse(a *domain.Advance) AdvanceResponse {
	return AdvanceResponse{
		AdvanceID:         a.AdvanceID,
		CounterpartyID:    a.CounterpartyID,
		Direction:         a.Direction,
		TotalAmount:       a.TotalAmount,
		UnallocatedAmount: a.UnallocatedAmount,
		State:             a.State(),
		AdvanceDate:       a.AdvanceDate,
		Notes:             a.Notes,
		CreatedAt:         a.CreatedAt,
		CreatedBy:         a.CreatedBy,
	}
}

// ToAllocationResponse converts a domain.Allocation to AllocationResponse DTO.
func ToAllocationResponse(a *domain.Allocation) AllocationResponse {
	return AllocationResponse{
		AllocationID: a.AllocationID,
		AdvanceID:    a.AdvanceID,
		DocumentID:   a.DocumentID,
		Amount:       a.Amount,
		AllocatedAt:  a.AllocatedAt,
	}
}

// ToAllocationResponses converts a slice of domain.Allocation to DTOs.
func ToAllocationResponses(as []domain.Allocation) []AllocationResponse {
	responses := make([]AllocationResponse, len(as))
	for i, a := range as {
		responses[i] = ToAllocationResponse(&a)
	}
	return responses
}
