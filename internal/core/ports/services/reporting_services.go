package services

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// ReportingSvcFacade exposes derived read models over the ledger.
type ReportingSvcFacade interface {
	// GetOutstandingSummary aggregates open receivables, open payables and
	// unallocated advance balances for a team.
	GetOutstandingSummary(ctx context.Context, teamID string, requestingUserID string) (*domain.OutstandingSummary, error)
}
