package mapping

import (
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/drukbooks/gst_ledger_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:       d.PaymentID,
		TeamID:          d.TeamID,
		DocumentID:      d.DocumentID,
		Amount:          d.Amount,
		PaymentDate:     d.PaymentDate,
		Method:          string(d.Method),
		ReferenceNumber: d.ReferenceNumber,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:       m.PaymentID,
		TeamID:          m.TeamID,
		DocumentID:      m.DocumentID,
		Amount:          m.Amount,
		PaymentDate:     m.PaymentDate,
		Method:          domain.PaymentMethod(m.Method),
		ReferenceNumber: m.ReferenceNumber,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts model Payments to domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}

// ToModelAdvance converts a domain Advance to a model Advance
func ToModelAdvance(d domain.Advance) models.Advance {
	return models.Advance{
		AdvanceID:         d.AdvanceID,
		TeamID:            d.TeamID,
		CounterpartyID:    d.CounterpartyID,
		Direction:         string(d.Direction),
		TotalAmount:       d.TotalAmount,
		UnallocatedAmount: d.UnallocatedAmount,
		AdvanceDate:       d.AdvanceDate,
		Notes:             d.Notes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAdvance converts a model Advance to a domain Advance
func ToDomainAdvance(m models.Advance) domain.Advance {
	return domain.Advance{
		AdvanceID:         m.AdvanceID,
		TeamID:            m.TeamID,
		CounterpartyID:    m.CounterpartyID,
		Direction:         domain.AdvanceDirection(m.Direction),
		TotalAmount:       m.TotalAmount,
		UnallocatedAmount: m.UnallocatedAmount,
		AdvanceDate:       m.AdvanceDate,
		Notes:             m.Notes,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelAllocation converts a domain Allocation to a model Allocation
func ToModelAllocation(d domain.Allocation) models.Allocation {
	return models.Allocation{
		AllocationID: d.AllocationID,
		AdvanceID:    d.AdvanceID,
		DocumentID:   d.DocumentID,
		Amount:       d.Amount,
		AllocatedAt:  d.AllocatedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAllocation converts a model Allocation to a domain Allocation
func ToDomainAllocation(m models.Allocation) domain.Allocation {
	return domain.Allocation{
		AllocationID: m.AllocationID,
		AdvanceID:    m.AdvanceID,
		DocumentID:   m.DocumentID,
		Amount:       m.Amount,
		AllocatedAt:  m.AllocatedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAllocationSlice converts model Allocations to domain Allocations
func ToDomainAllocationSlice(ms []models.Allocation) []domain.Allocation {
	ds := make([]domain.Allocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAllocation(m)
	}
	return ds
}

// ToModelAdjustment converts a domain Adjustment to a model Adjustment
func ToModelAdjustment(d domain.Adjustment) models.Adjustment {
	return models.Adjustment{
		AdjustmentID:    d.AdjustmentID,
		TeamID:          d.TeamID,
		DocumentID:      d.DocumentID,
		Type:            string(d.Type),
		SignedAmount:    d.SignedAmount,
		Description:     d.Description,
		AdjustmentDate:  d.AdjustmentDate,
		ReferenceNumber: d.ReferenceNumber,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAdjustment converts a model Adjustment to a domain Adjustment
func ToDomainAdjustment(m models.Adjustment) domain.Adjustment {
	return domain.Adjustment{
		AdjustmentID:    m.AdjustmentID,
		TeamID:          m.TeamID,
		DocumentID:      m.DocumentID,
		Type:            domain.AdjustmentType(m.Type),
		SignedAmount:    m.SignedAmount,
		Description:     m.Description,
		AdjustmentDate:  m.AdjustmentDate,
		ReferenceNumber: m.ReferenceNumber,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAdjustmentSlice converts model Adjustments to domain Adjustments
func ToDomainAdjustmentSlice(ms []models.Adjustment) []domain.Adjustment {
	ds := make([]domain.Adjustment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAdjustment(m)
	}
	return ds
}

// ToModelPeriodLock converts a domain GstPeriodLock to a model GstPeriodLock
func ToModelPeriodLock(d domain.GstPeriodLock) models.GstPeriodLock {
	return models.GstPeriodLock{
		PeriodLockID: d.PeriodLockID,
		TeamID:       d.TeamID,
		PeriodStart:  d.PeriodStart,
		PeriodEnd:    d.PeriodEnd,
		FiledAt:      d.FiledAt,
		FiledBy:      d.FiledBy,
	}
}

// ToDomainPeriodLock converts a model GstPeriodLock to a domain GstPeriodLock
func ToDomainPeriodLock(m models.GstPeriodLock) domain.GstPeriodLock {
	return domain.GstPeriodLock{
		PeriodLockID: m.PeriodLockID,
		TeamID:       m.TeamID,
		PeriodStart:  m.PeriodStart,
		PeriodEnd:    m.PeriodEnd,
		FiledAt:      m.FiledAt,
		FiledBy:      m.FiledBy,
	}
}
