// Package ledger holds the pure balance arithmetic shared by services and
// repositories. No code path may set amountPaid/amountDue on a document
// without going through Recompute.
package ledger

import (
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Balance is the derived monetary state of a document.
type Balance struct {
	AmountPaid    decimal.Decimal
	AmountDue     decimal.Decimal
	PaymentStatus domain.PaymentStatus
}

// Recompute derives a document's balance from its ledger entries:
//
//	amountPaid = sum(payments) + sum(allocations)
//	amountDue  = totalAmount - amountPaid + sum(adjustments.signedAmount)
//
// Comparison on fixed-point decimals is exact; there is no epsilon.
func Recompute(totalAmount decimal.Decimal, payments []domain.Payment, allocations []domain.Allocation, adjustments []domain.Adjustment) Balance {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	for _, a := range allocations {
		paid = paid.Add(a.Amount)
	}

	netAdjustment := decimal.Zero
	for _, adj := range adjustments {
		netAdjustment = netAdjustment.Add(adj.SignedAmount)
	}

	due := totalAmount.Sub(paid).Add(netAdjustment)

	return Balance{
		AmountPaid:    paid,
		AmountDue:     due,
		PaymentStatus: statusFor(paid, due),
	}
}

// RecomputeFromSums is the aggregate form used by repositories that read
// SUM() columns instead of materialised entry slices.
func RecomputeFromSums(totalAmount, paymentSum, allocationSum, adjustmentSum decimal.Decimal) Balance {
	paid := paymentSum.Add(allocationSum)
	due := totalAmount.Sub(paid).Add(adjustmentSum)
	return Balance{
		AmountPaid:    paid,
		AmountDue:     due,
		PaymentStatus: statusFor(paid, due),
	}
}

func statusFor(paid, due decimal.Decimal) domain.PaymentStatus {
	switch {
	case due.LessThanOrEqual(decimal.Zero):
		return domain.PaymentPaid
	case paid.GreaterThan(decimal.Zero):
		return domain.PaymentPartial
	default:
		return domain.PaymentUnpaid
	}
}

// NextStatus applies the automatic lifecycle transitions driven by balance
// changes: an issued document whose due reaches zero becomes paid, and a paid
// document whose due is reopened (payment deleted, debit note added) reverts
// to issued. Draft, cancelled and quotation states are untouched.
func NextStatus(current domain.DocumentStatus, b Balance) domain.DocumentStatus {
	switch current {
	case domain.StatusIssued:
		if b.PaymentStatus == domain.PaymentPaid {
			return domain.StatusPaid
		}
	case domain.StatusPaid:
		if b.PaymentStatus != domain.PaymentPaid {
			return domain.StatusIssued
		}
	}
	return current
}
