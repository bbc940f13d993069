package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes the balance-bearing record types.
type DocumentKind string

const (
	KindInvoice      DocumentKind = "INVOICE"
	KindSupplierBill DocumentKind = "SUPPLIER_BILL"
	KindQuotation    DocumentKind = "QUOTATION"
)

// BearsBalance reports whether documents of this kind carry a monetary ledger.
// Quotations do not; they only become monetary once converted to an invoice.
func (k DocumentKind) BearsBalance() bool {
	return k == KindInvoice || k == KindSupplierBill
}

// DocumentStatus is the lifecycle state of a document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusIssued    DocumentStatus = "ISSUED"
	StatusPaid      DocumentStatus = "PAID"
	StatusCancelled DocumentStatus = "CANCELLED"
	// Quotation-only terminal states.
	StatusAccepted DocumentStatus = "ACCEPTED"
	StatusExpired  DocumentStatus = "EXPIRED"
)

// PaymentStatus is derived from amountDue vs amountPaid, never set directly.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// Document represents an Invoice, SupplierBill or Quotation.
// Invoices and supplier bills are structurally identical ledger records,
// differing only in counterparty direction.
type Document struct {
	DocumentID     string          `json:"documentID"` // Primary Key (UUID)
	TeamID         string          `json:"teamID"`     // Owning tenant (Not Null)
	Kind           DocumentKind    `json:"kind"`
	CounterpartyID string          `json:"counterpartyID"` // Customer or supplier
	DocumentNumber string          `json:"documentNumber"`
	DocumentDate   time.Time       `json:"documentDate"`
	CurrencyCode   string          `json:"currencyCode"`
	TotalAmount    decimal.Decimal `json:"totalAmount"` // Sum of line items; fixed outside draft
	AmountPaid     decimal.Decimal `json:"amountPaid"`  // Payments + allocated advances
	AmountDue      decimal.Decimal `json:"amountDue"`   // total - paid + net adjustments
	Status         DocumentStatus  `json:"status"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	Notes          string          `json:"notes"`
	// IsLocked is derived on read from the team's filed GST periods.
	IsLocked  bool       `json:"isLocked"`
	LineItems []LineItem `json:"lineItems,omitempty"`
	AuditFields
}

// LineItem is one priced line of a document.
type LineItem struct {
	LineItemID  string          `json:"lineItemID"`
	DocumentID  string          `json:"documentID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"` // quantity * unitPrice
}

// CanTransition reports whether a manual status change from the document's
// current status to target is legal for its kind. The automatic ISSUED->PAID
// transition driven by balance recomputation does not go through here.
func (d *Document) CanTransition(target DocumentStatus) bool {
	switch target {
	case StatusIssued:
		return d.Status == StatusDraft
	case StatusCancelled:
		if d.Status == StatusDraft {
			return true
		}
		// An issued document may be cancelled only while untouched by money.
		return d.Status == StatusIssued && d.AmountPaid.IsZero()
	case StatusAccepted, StatusExpired:
		return d.Kind == KindQuotation && d.Status == StatusIssued
	default:
		return false
	}
}

// IsEditable reports whether line items (and hence totalAmount) may change.
func (d *Document) IsEditable() bool {
	return d.Status == StatusDraft && !d.IsLocked
}
