package dto

import (
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequest attaches a signed correction to a document. Amount
// is a magnitude; the sign is derived from the adjustment type, except for
// OTHER where the caller's sign is kept.
type CreateAdjustmentRequest struct {
	DocumentID      string                `json:"documentID" binding:"required"`
	Type            domain.AdjustmentType `json:"type" binding:"required,oneof=CREDIT_NOTE DEBIT_NOTE DISCOUNT LATE_FEE BANK_CHARGES OTHER"`
	Amount          decimal.Decimal       `json:"amount" binding:"required"`
	Description     string                `json:"description" binding:"required"`
	AdjustmentDate  time.Time             `json:"adjustmentDate" binding:"required"`
	ReferenceNumber string                `json:"referenceNumber"`
}

// AdjustmentResponse is the returned form of an adjustment.
type AdjustmentResponse struct {
	AdjustmentID    string                `json:"adjustmentID"`
	DocumentID      string                `json:"documentID"`
	Type            domain.AdjustmentType `json:"type"`
	SignedAmount    decimal.Decimal       `json:"signedAmount"`
	Description     string                `json:"description"`
	AdjustmentDate  time.Time             `json:"adjustmentDate"`
	ReferenceNumber string                `json:"referenceNumber"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ToAdjustmentResponse converts a domain.Adjustment to AdjustmentResponse DTO.
func ToAdjustmentResponse(a *domain.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		AdjustmentID:    a.AdjustmentID,
		DocumentID:      a.DocumentID,
		Type:            a.Type,
		SignedAmount:    a.SignedAmount,
		Description:     a.Description,
		AdjustmentDate:  a.AdjustmentDate,
		ReferenceNumber: a.ReferenceNumber,
		CreatedAt:       a.CreatedAt,
		CreatedBy:       a.CreatedBy,
	}
}
