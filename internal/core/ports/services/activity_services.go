package services

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// ActivitySvcFacade exposes the append-only activity log.
type ActivitySvcFacade interface {
	// ListActivities retrieves a team's activity entries, newest first with
	// cursor pagination.
	ListActivities(ctx context.Context, teamID string, requestingUserID string, limit int, nextToken *string) ([]domain.Activity, *string, error)
}
