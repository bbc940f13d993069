package domain

import "github.com/shopspring/decimal"

// OutstandingSummary aggregates the open monetary positions of a team.
type OutstandingSummary struct {
	ReceivableCount     int             `json:"receivableCount"`
	ReceivableDue       decimal.Decimal `json:"receivableDue"`
	PayableCount        int             `json:"payableCount"`
	PayableDue          decimal.Decimal `json:"payableDue"`
	UnallocatedReceived decimal.Decimal `json:"unallocatedReceived"`
	UnallocatedPaid     decimal.Decimal `json:"unallocatedPaid"`
}
