package dto

import (
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OutstandingSummaryResponse aggregates a team's open monetary positions.
type OutstandingSummaryResponse struct {
	ReceivableCount      int             `json:"receivableCount"`      // Unpaid/partial invoices
	ReceivableDue        decimal.Decimal `json:"receivableDue"`        // Sum of their amount due
	PayableCount         int             `json:"payableCount"`         // Unpaid/partial supplier bills
	PayableDue           decimal.Decimal `json:"payableDue"`           // Sum of their amount due
	UnallocatedReceived  decimal.Decimal `json:"unallocatedReceived"`  // Customer advances not yet applied
	UnallocatedPaid      decimal.Decimal `json:"unallocatedPaid"`      // Supplier advances not yet applied
}

// ToOutstandingSummaryResponse converts a domain.OutstandingSummary to its DTO.
func ToOutstandingSummaryResponse(s *domain.OutstandingSummary) OutstandingSummaryResponse {
	return OutstandingSummaryResponse{
		ReceivableCount:     s.ReceivableCount,
		ReceivableDue:       s.ReceivableDue,
		PayableCount:        s.PayableCount,
		PayableDue:          s.PayableDue,
		UnallocatedReceived: s.UnallocatedReceived,
		UnallocatedPaid:     s.UnallocatedPaid,
	}
}
