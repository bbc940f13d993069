package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind mirrors domain.DocumentKind at the persistence layer.
type DocumentKind string

const (
	KindInvoice      DocumentKind = "INVOICE"
	KindSupplierBill DocumentKind = "SUPPLIER_BILL"
	KindQuotation    DocumentKind = "QUOTATION"
)

// DocumentStatus mirrors domain.DocumentStatus.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusIssued    DocumentStatus = "ISSUED"
	StatusPaid      DocumentStatus = "PAID"
	StatusCancelled DocumentStatus = "CANCELLED"
	StatusAccepted  DocumentStatus = "ACCEPTED"
	StatusExpired   DocumentStatus = "EXPIRED"
)

// PaymentStatus mirrors domain.PaymentStatus.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// Document is the persisted form of an invoice, supplier bill or quotation.
// amount_paid and amount_due are maintained only by the ledger recompute; no
// other code path writes them.
type Document struct {
	DocumentID     string          `db:"document_id"`
	TeamID         string          `db:"team_id"`
	Kind           DocumentKind    `db:"kind"`
	CounterpartyID string          `db:"counterparty_id"`
	DocumentNumber string          `db:"document_number"`
	DocumentDate   time.Time       `db:"document_date"`
	CurrencyCode   string          `db:"currency_code"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	AmountPaid     decimal.Decimal `db:"amount_paid"`
	AmountDue      decimal.Decimal `db:"amount_due"`
	Status         DocumentStatus  `db:"status"`
	PaymentStatus  PaymentStatus   `db:"payment_status"`
	Notes          string          `db:"notes"`
	AuditFields
}

// LineItem is one priced line belonging to a document.
type LineItem struct {
	LineItemID  string          `db:"line_item_id"`
	DocumentID  string          `db:"document_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Amount      decimal.Decimal `db:"amount"`
}
