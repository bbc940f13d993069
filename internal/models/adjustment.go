package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Adjustment is the persisted signed ledger entry attached to a document.
type Adjustment struct {
	AdjustmentID    string          `db:"adjustment_id"`
	TeamID          string          `db:"team_id"`
	DocumentID      string          `db:"document_id"`
	Type            string          `db:"adjustment_type"`
	SignedAmount    decimal.Decimal `db:"signed_amount"`
	Description     string          `db:"description"`
	AdjustmentDate  time.Time       `db:"adjustment_date"`
	ReferenceNumber string          `db:"reference_number"`
	AuditFields
}
