package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentType classifies signed corrections to a document's amount due.
type AdjustmentType string

const (
	AdjCreditNote  AdjustmentType = "CREDIT_NOTE"
	AdjDebitNote   AdjustmentType = "DEBIT_NOTE"
	AdjDiscount    AdjustmentType = "DISCOUNT"
	AdjLateFee     AdjustmentType = "LATE_FEE"
	AdjBankCharges AdjustmentType = "BANK_CHARGES"
	AdjOther       AdjustmentType = "OTHER"
)

// Sign returns -1 for due-reducing types, +1 for due-increasing types and 0
// for OTHER, whose sign is supplied by the caller.
func (t AdjustmentType) Sign() int {
	switch t {
	case AdjCreditNote, AdjDiscount:
		return -1
	case AdjDebitNote, AdjLateFee, AdjBankCharges:
		return 1
	default:
		return 0
	}
}

// Adjustment is a signed ledger entry attached to a document. credit_note and
// discount carry negative SignedAmount; debit_note, late_fee and bank_charges
// carry positive. Deletion restores the document's prior amount due.
type Adjustment struct {
	AdjustmentID    string          `json:"adjustmentID"` // Primary Key (UUID)
	TeamID          string          `json:"teamID"`
	DocumentID      string          `json:"documentID"`
	Type            AdjustmentType  `json:"type"`
	SignedAmount    decimal.Decimal `json:"signedAmount"` // Never zero
	Description     string          `json:"description"`
	AdjustmentDate  time.Time       `json:"adjustmentDate"`
	ReferenceNumber string          `json:"referenceNumber"`
	AuditFields
}

// ApplySign normalises a caller-supplied positive magnitude into the signed
// amount stored on the ledger. For OTHER the magnitude's own sign is kept.
func (t AdjustmentType) ApplySign(magnitude decimal.Decimal) decimal.Decimal {
	switch t.Sign() {
	case -1:
		return magnitude.Abs().Neg()
	case 1:
		return magnitude.Abs()
	default:
		return magnitude
	}
}

// Reversal returns the amount that must be added back to a document's due
// when this adjustment is deleted.
func (a *Adjustment) Reversal() decimal.Decimal {
	return a.SignedAmount.Neg()
}
