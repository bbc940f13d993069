package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance is the persisted form of a pre-payment with its mutable remainder.
type Advance struct {
	AdvanceID         string          `db:"advance_id"`
	TeamID            string          `db:"team_id"`
	CounterpartyID    string          `db:"counterparty_id"`
	Direction         string          `db:"direction"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	UnallocatedAmount decimal.Decimal `db:"unallocated_amount"`
	AdvanceDate       time.Time       `db:"advance_date"`
	Notes             string          `db:"notes"`
	AuditFields
}

// Allocation is the persisted application of part of an advance to a document.
type Allocation struct {
	AllocationID string          `db:"allocation_id"`
	AdvanceID    string          `db:"advance_id"`
	DocumentID   string          `db:"document_id"`
	Amount       decimal.Decimal `db:"amount"`
	AllocatedAt  time.Time       `db:"allocated_at"`
	AuditFields
}
