package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdvanceDirection records which way the pre-payment flows.
type AdvanceDirection string

const (
	// AdvanceReceived is money received from a customer, allocatable to invoices.
	AdvanceReceived AdvanceDirection = "RECEIVED"
	// AdvancePaid is money paid to a supplier, allocatable to supplier bills.
	AdvancePaid AdvanceDirection = "PAID"
)

// TargetKind returns the document kind this advance may be allocated against.
func (d AdvanceDirection) TargetKind() DocumentKind {
	if d == AdvancePaid {
		return KindSupplierBill
	}
	return KindInvoice
}

// AdvanceState classifies an advance by its remaining unallocated amount.
type AdvanceState string

const (
	AdvanceUnallocated        AdvanceState = "UNALLOCATED"
	AdvancePartiallyAllocated AdvanceState = "PARTIALLY_ALLOCATED"
	AdvanceFullyAllocated     AdvanceState = "FULLY_ALLOCATED"
)

// Advance is a pre-payment not yet applied to specific documents. Its
// unallocated remainder shrinks as allocations are made and grows back when
// they are reversed.
type Advance struct {
	AdvanceID         string           `json:"advanceID"` // Primary Key (UUID)
	TeamID            string           `json:"teamID"`
	CounterpartyID    string           `json:"counterpartyID"`
	Direction         AdvanceDirection `json:"direction"`
	TotalAmount       decimal.Decimal  `json:"totalAmount"`       // Always positive
	UnallocatedAmount decimal.Decimal  `json:"unallocatedAmount"` // Invariant: total - sum(allocations)
	AdvanceDate       time.Time        `json:"advanceDate"`
	Notes             string           `json:"notes"`
	AuditFields
}

// State derives the allocation state from the remainder.
func (a *Advance) State() AdvanceState {
	switch {
	case a.UnallocatedAmount.IsZero():
		return AdvanceFullyAllocated
	case a.UnallocatedAmount.Equal(a.TotalAmount):
		return AdvanceUnallocated
	default:
		return AdvancePartiallyAllocated
	}
}

// Allocation applies part of an advance to one document.
type Allocation struct {
	AllocationID string          `json:"allocationID"` // Primary Key (UUID)
	AdvanceID    string          `json:"advanceID"`
	DocumentID   string          `json:"documentID"`
	Amount       decimal.Decimal `json:"amount"` // Always positive
	AllocatedAt  time.Time       `json:"allocatedAt"`
	AuditFields
}
