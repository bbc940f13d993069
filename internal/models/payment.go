package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the persisted form of a direct payment against a document.
type Payment struct {
	PaymentID       string          `db:"payment_id"`
	TeamID          string          `db:"team_id"`
	DocumentID      string          `db:"document_id"`
	Amount          decimal.Decimal `db:"amount"`
	PaymentDate     time.Time       `db:"payment_date"`
	Method          string          `db:"method"`
	ReferenceNumber string          `db:"reference_number"`
	AuditFields
}
