package mapping

import (
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/drukbooks/gst_ledger_app/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:     d.DocumentID,
		TeamID:         d.TeamID,
		Kind:           models.DocumentKind(d.Kind),
		CounterpartyID: d.CounterpartyID,
		DocumentNumber: d.DocumentNumber,
		DocumentDate:   d.DocumentDate,
		CurrencyCode:   d.CurrencyCode,
		TotalAmount:    d.TotalAmount,
		AmountPaid:     d.AmountPaid,
		AmountDue:      d.AmountDue,
		Status:         models.DocumentStatus(d.Status),
		PaymentStatus:  models.PaymentStatus(d.PaymentStatus),
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document.
// IsLocked is not persisted; callers derive it from the team's period locks.
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:     m.DocumentID,
		TeamID:         m.TeamID,
		Kind:           domain.DocumentKind(m.Kind),
		CounterpartyID: m.CounterpartyID,
		DocumentNumber: m.DocumentNumber,
		DocumentDate:   m.DocumentDate,
		CurrencyCode:   m.CurrencyCode,
		TotalAmount:    m.TotalAmount,
		AmountPaid:     m.AmountPaid,
		AmountDue:      m.AmountDue,
		Status:         domain.DocumentStatus(m.Status),
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:  d.LineItemID,
		DocumentID:  d.DocumentID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Amount:      d.Amount,
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:  m.LineItemID,
		DocumentID:  m.DocumentID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
	}
}

// ToDomainLineItemSlice converts a slice of model LineItems to domain LineItems
func ToDomainLineItemSlice(ms []models.LineItem) []domain.LineItem {
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}
