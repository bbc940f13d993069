package repositories

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// ActivityRepositoryFacade defines persistence operations for the audit log.
// The log is append-only: there are no update or delete operations.
type ActivityRepositoryFacade interface {
	// SaveActivity appends one audit record.
	SaveActivity(ctx context.Context, activity domain.Activity) error

	// ListActivitiesByTeam retrieves a paginated list of audit records,
	// newest first.
	ListActivitiesByTeam(ctx context.Context, teamID string, limit int, nextToken *string) ([]domain.Activity, *string, error)
}
