package ledger_test

import (
	"testing"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/drukbooks/gst_ledger_app/internal/utils/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestRecompute_InvoiceLifecycle(t *testing.T) {
	total := dec("1000")

	// Freshly issued invoice has no entries.
	b := ledger.Recompute(total, nil, nil, nil)
	assert.True(t, b.AmountPaid.IsZero())
	assert.True(t, b.AmountDue.Equal(dec("1000")))
	assert.Equal(t, domain.PaymentUnpaid, b.PaymentStatus)

	// A 400 payment leaves 600 due.
	payments := []domain.Payment{{Amount: dec("400")}}
	b = ledger.Recompute(total, payments, nil, nil)
	assert.True(t, b.AmountPaid.Equal(dec("400")))
	assert.True(t, b.AmountDue.Equal(dec("600")))
	assert.Equal(t, domain.PaymentPartial, b.PaymentStatus)

	// A 50 debit note raises the due to 650.
	adjustments := []domain.Adjustment{{Type: domain.AdjDebitNote, SignedAmount: dec("50")}}
	b = ledger.Recompute(total, payments, nil, adjustments)
	assert.True(t, b.AmountPaid.Equal(dec("400")))
	assert.True(t, b.AmountDue.Equal(dec("650")))
	assert.Equal(t, domain.PaymentPartial, b.PaymentStatus)

	// Allocating 650 from an advance settles the document exactly.
	allocations := []domain.Allocation{{Amount: dec("650")}}
	b = ledger.Recompute(total, payments, allocations, adjustments)
	assert.True(t, b.AmountPaid.Equal(dec("1050")))
	assert.True(t, b.AmountDue.IsZero())
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
}

func TestRecompute_CreditNoteSettlesWithoutPayments(t *testing.T) {
	// A supplier bill fully credited away is paid with zero money movement.
	total := dec("500")
	adjustments := []domain.Adjustment{{Type: domain.AdjCreditNote, SignedAmount: dec("-500")}}

	b := ledger.Recompute(total, nil, nil, adjustments)
	assert.True(t, b.AmountPaid.IsZero())
	assert.True(t, b.AmountDue.IsZero())
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
}

func TestRecompute_Table(t *testing.T) {
	tests := []struct {
		name          string
		total         string
		paymentSum    string
		allocationSum string
		adjustmentSum string
		wantPaid      string
		wantDue       string
		wantStatus    domain.PaymentStatus
	}{
		{"unpaid", "100", "0", "0", "0", "0", "100", domain.PaymentUnpaid},
		{"partial payment", "100", "40", "0", "0", "40", "60", domain.PaymentPartial},
		{"partial via allocation", "100", "0", "25", "0", "25", "75", domain.PaymentPartial},
		{"mixed settles", "100", "40", "60", "0", "100", "0", domain.PaymentPaid},
		{"discount closes remainder", "100", "90", "0", "-10", "90", "0", domain.PaymentPaid},
		{"late fee reopens", "100", "100", "0", "15", "100", "15", domain.PaymentPartial},
		{"fractional cents exact", "0.30", "0.10", "0.20", "0", "0.30", "0", domain.PaymentPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ledger.RecomputeFromSums(dec(tt.total), dec(tt.paymentSum), dec(tt.allocationSum), dec(tt.adjustmentSum))
			assert.True(t, b.AmountPaid.Equal(dec(tt.wantPaid)), "paid: got %s want %s", b.AmountPaid, tt.wantPaid)
			assert.True(t, b.AmountDue.Equal(dec(tt.wantDue)), "due: got %s want %s", b.AmountDue, tt.wantDue)
			assert.Equal(t, tt.wantStatus, b.PaymentStatus)
		})
	}
}

func TestNextStatus(t *testing.T) {
	paid := ledger.Balance{PaymentStatus: domain.PaymentPaid}
	partial := ledger.Balance{PaymentStatus: domain.PaymentPartial}
	unpaid := ledger.Balance{PaymentStatus: domain.PaymentUnpaid}

	assert.Equal(t, domain.StatusPaid, ledger.NextStatus(domain.StatusIssued, paid))
	assert.Equal(t, domain.StatusIssued, ledger.NextStatus(domain.StatusIssued, partial))
	assert.Equal(t, domain.StatusIssued, ledger.NextStatus(domain.StatusPaid, partial))
	assert.Equal(t, domain.StatusIssued, ledger.NextStatus(domain.StatusPaid, unpaid))
	assert.Equal(t, domain.StatusPaid, ledger.NextStatus(domain.StatusPaid, paid))

	// Manual-only states never move on balance changes.
	assert.Equal(t, domain.StatusDraft, ledger.NextStatus(domain.StatusDraft, paid))
	assert.Equal(t, domain.StatusCancelled, ledger.NextStatus(domain.StatusCancelled, paid))
}
