package dto

import (
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest records a direct payment against a document.
type RecordPaymentRequest struct {
	DocumentID      string               `json:"documentID" binding:"required"`
	Amount          decimal.Decimal      `json:"amount" binding:"required"`
	PaymentDate     time.Time            `json:"paymentDate" binding:"required"`
	Method          domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CHEQUE CARD MOBILE OTHER"`
	ReferenceNumber string               `json:"referenceNumber"`
}

// PaymentResponse is the returned form of a payment.
type PaymentResponse struct {
	PaymentID       string               `json:"paymentID"`
	DocumentID      string               `json:"documentID"`
	Amount          decimal.Decimal      `json:"amount"`
	PaymentDate     time.Time            `json:"paymentDate"`
	Method          domain.PaymentMethod `json:"method"`
	ReferenceNumber string               `json:"referenceNumber"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		DocumentID:      p.DocumentID,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate,
		Method:          p.Method,
		ReferenceNumber: p.ReferenceNumber,
		CreatedAt:       p.CreatedAt,
		CreatedBy:       p.CreatedBy,
	}
}
