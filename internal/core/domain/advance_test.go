package domain_test

import (
	"testing"
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAdvance_State(t *testing.T) {
	a := domain.Advance{TotalAmount: decimal.NewFromInt(100), UnallocatedAmount: decimal.NewFromInt(100)}
	assert.Equal(t, domain.AdvanceUnallocated, a.State())

	a.UnallocatedAmount = decimal.NewFromInt(40)
	assert.Equal(t, domain.AdvancePartiallyAllocated, a.State())

	a.UnallocatedAmount = decimal.Zero
	assert.Equal(t, domain.AdvanceFullyAllocated, a.State())
}

func TestAdvanceDirection_TargetKind(t *testing.T) {
	assert.Equal(t, domain.KindInvoice, domain.AdvanceReceived.TargetKind())
	assert.Equal(t, domain.KindSupplierBill, domain.AdvancePaid.TargetKind())
}

func TestAdjustmentType_ApplySign(t *testing.T) {
	hundred := decimal.NewFromInt(100)

	assert.True(t, domain.AdjCreditNote.ApplySign(hundred).Equal(decimal.NewFromInt(-100)))
	assert.True(t, domain.AdjDiscount.ApplySign(hundred).Equal(decimal.NewFromInt(-100)))
	assert.True(t, domain.AdjDebitNote.ApplySign(hundred).Equal(hundred))
	assert.True(t, domain.AdjLateFee.ApplySign(hundred).Equal(hundred))
	assert.True(t, domain.AdjBankCharges.ApplySign(hundred).Equal(hundred))

	// OTHER keeps the caller's sign, either way.
	assert.True(t, domain.AdjOther.ApplySign(hundred).Equal(hundred))
	assert.True(t, domain.AdjOther.ApplySign(hundred.Neg()).Equal(hundred.Neg()))

	// Due-reducing types normalise a negative magnitude too.
	assert.True(t, domain.AdjCreditNote.ApplySign(hundred.Neg()).Equal(decimal.NewFromInt(-100)))
}

func TestAdjustment_Reversal(t *testing.T) {
	credit := domain.Adjustment{SignedAmount: decimal.NewFromInt(-50)}
	assert.True(t, credit.Reversal().Equal(decimal.NewFromInt(50)))

	debit := domain.Adjustment{SignedAmount: decimal.NewFromInt(75)}
	assert.True(t, debit.Reversal().Equal(decimal.NewFromInt(-75)))
}

func TestGstPeriodLock_Covers(t *testing.T) {
	lock := domain.GstPeriodLock{
		PeriodStart: date(2026, 4, 1),
		PeriodEnd:   date(2026, 6, 30),
	}

	assert.True(t, lock.Covers(date(2026, 4, 1)))
	assert.True(t, lock.Covers(date(2026, 5, 15)))
	assert.True(t, lock.Covers(date(2026, 6, 30)))
	assert.False(t, lock.Covers(date(2026, 3, 31)))
	assert.False(t, lock.Covers(date(2026, 7, 1)))
}

func TestGstPeriodLock_Overlaps(t *testing.T) {
	q1 := domain.GstPeriodLock{PeriodStart: date(2026, 1, 1), PeriodEnd: date(2026, 3, 31)}
	q2 := domain.GstPeriodLock{PeriodStart: date(2026, 4, 1), PeriodEnd: date(2026, 6, 30)}
	straddle := domain.GstPeriodLock{PeriodStart: date(2026, 3, 1), PeriodEnd: date(2026, 4, 30)}

	assert.False(t, q1.Overlaps(q2.PeriodStart, q2.PeriodEnd))
	assert.True(t, q1.Overlaps(straddle.PeriodStart, straddle.PeriodEnd))
	assert.True(t, q2.Overlaps(straddle.PeriodStart, straddle.PeriodEnd))
	assert.True(t, q1.Overlaps(q1.PeriodStart, q1.PeriodEnd))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
