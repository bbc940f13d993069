package dto

import (
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineItemRequest is one priced line of a new or edited document.
type CreateLineItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateDocumentRequest creates a draft invoice, supplier bill or quotation.
type CreateDocumentRequest struct {
	Kind           domain.DocumentKind     `json:"kind" binding:"required,oneof=INVOICE SUPPLIER_BILL QUOTATION"`
	CounterpartyID string                  `json:"counterpartyID" binding:"required"`
	DocumentNumber string                  `json:"documentNumber" binding:"required"`
	DocumentDate   time.Time               `json:"documentDate" binding:"required"`
	CurrencyCode   string                  `json:"currencyCode" binding:"required,uppercase,len=3"`
	Notes          string                  `json:"notes"`
	LineItems      []CreateLineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// UpdateDocumentRequest edits a draft document. Replacing line items replaces
// the full set; totals are recomputed from the new lines.
type UpdateDocumentRequest struct {
	DocumentNumber *string                 `json:"documentNumber"`
	DocumentDate   *time.Time              `json:"documentDate"`
	Notes          *string                 `json:"notes"`
	LineItems      []CreateLineItemRequest `json:"lineItems" binding:"omitempty,min=1,dive"`
}

// TransitionDocumentRequest applies a manual status change.
type TransitionDocumentRequest struct {
	Status domain.DocumentStatus `json:"status" binding:"required,oneof=ISSUED CANCELLED ACCEPTED EXPIRED"`
}

// ListDocumentsParams holds filters for listing documents.
type ListDocumentsParams struct {
	Kind      *domain.DocumentKind   `form:"kind"`
	Status    *domain.DocumentStatus `form:"status"`
	Limit     int                    `form:"limit"`
	NextToken *string                `form:"nextToken"`
}

// LineItemResponse is the returned form of a line item.
type LineItemResponse struct {
	LineItemID  string          `json:"lineItemID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// DocumentResponse is the returned form of a document with derived fields.
type DocumentResponse struct {
	DocumentID     string                `json:"documentID"`
	TeamID         string                `json:"teamID"`
	Kind           domain.DocumentKind   `json:"kind"`
	CounterpartyID string                `json:"counterpartyID"`
	DocumentNumber string                `json:"documentNumber"`
	DocumentDate   time.Time             `json:"documentDate"`
	CurrencyCode   string                `json:"currencyCode"`
	TotalAmount    decimal.Decimal       `json:"totalAmount"`
	AmountPaid     decimal.Decimal       `json:"amountPaid"`
	AmountDue      decimal.Decimal       `json:"amountDue"`
	Status         domain.DocumentStatus `json:"status"`
	PaymentStatus  domain.PaymentStatus  `json:"paymentStatus"`
	IsLocked       bool                  `json:"isLocked"`
	Notes          string                `json:"notes"`
	LineItems      []LineItemResponse    `json:"lineItems,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// ListDocumentsResponse wraps a page of documents with a continuation token.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	lines := make([]LineItemResponse, len(d.LineItems))
	for i, li := range d.LineItems {
		lines[i] = LineItemResponse{
			LineItemID:  li.LineItemID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
		}
	}
	return DocumentResponse{
		DocumentID:     d.DocumentID,
		TeamID:         d.TeamID,
		Kind:           d.Kind,
		CounterpartyID: d.CounterpartyID,
		DocumentNumber: d.DocumentNumber,
		DocumentDate:   d.DocumentDate,
		CurrencyCode:   d.CurrencyCode,
		TotalAmount:    d.TotalAmount,
		AmountPaid:     d.AmountPaid,
		AmountDue:      d.AmountDue,
		Status:         d.Status,
		PaymentStatus:  d.PaymentStatus,
		IsLocked:       d.IsLocked,
		Notes:          d.Notes,
		LineItems:      lines,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}
