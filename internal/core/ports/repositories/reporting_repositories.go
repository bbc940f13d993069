package repositories

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// ReportingRepository defines read-only aggregation queries.
type ReportingRepository interface {
	// GetOutstandingSummary aggregates open receivables, payables and
	// unallocated advances for a team.
	GetOutstandingSummary(ctx context.Context, teamID string) (*domain.OutstandingSummary, error)
}
