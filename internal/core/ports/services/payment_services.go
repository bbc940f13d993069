package services

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
)

// PaymentSvcFacade defines direct payment operations against documents.
type PaymentSvcFacade interface {
	// RecordPayment records a payment against an invoice or supplier bill and
	// recomputes the document's balances atomically.
	RecordPayment(ctx context.Context, teamID string, req dto.RecordPaymentRequest, actingUserID string) (*domain.Payment, error)

	// DeletePayment removes a payment and recomputes the document's balances.
	// A paid document reopens to issued when the deletion leaves a remainder.
	DeletePayment(ctx context.Context, teamID string, paymentID string, actingUserID string) error

	// ListPaymentsByDocument retrieves a document's payments, newest first.
	ListPaymentsByDocument(ctx context.Context, teamID string, documentID string, requestingUserID string) ([]domain.Payment, error)
}
