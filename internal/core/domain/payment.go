package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the instrument used for a direct payment.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCheque       PaymentMethod = "CHEQUE"
	MethodCard         PaymentMethod = "CARD"
	MethodMobile       PaymentMethod = "MOBILE"
	MethodOther        PaymentMethod = "OTHER"
)

// Payment is money applied directly to a single document. Payments are
// immutable once created; deletion reverses their effect on the document.
type Payment struct {
	PaymentID       string          `json:"paymentID"` // Primary Key (UUID)
	TeamID          string          `json:"teamID"`
	DocumentID      string          `json:"documentID"`
	Amount          decimal.Decimal `json:"amount"` // Always positive
	PaymentDate     time.Time       `json:"paymentDate"`
	Method          PaymentMethod   `json:"method"`
	ReferenceNumber string          `json:"referenceNumber"`
	AuditFields
}
