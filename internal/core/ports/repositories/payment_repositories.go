package repositories

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a payment by ID.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByDocument retrieves all payments applied to a document.
	ListPaymentsByDocument(ctx context.Context, documentID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data. Both methods lock
// the owning document row, mutate, recompute its balance and write the
// activity record within one database transaction.
type PaymentWriter interface {
	// SavePayment inserts the payment and applies it to the document balance.
	// Returns apperrors.ErrOverAllocation if the payment would drive the
	// document's due negative and negative due is disallowed.
	SavePayment(ctx context.Context, payment domain.Payment, activity domain.Activity) error

	// DeletePayment removes the payment and reverses its balance effect.
	DeletePayment(ctx context.Context, payment domain.Payment, activity domain.Activity) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
