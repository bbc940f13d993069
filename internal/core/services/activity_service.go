package services

import (
	"context"
	"fmt"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
)

// activityService exposes the append-only audit log.
type activityService struct {
	activityRepo portsrepo.ActivityRepositoryFacade
	teamSvc      portssvc.TeamAuthorizerSvc
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo portsrepo.ActivityRepositoryFacade, teamSvc portssvc.TeamAuthorizerSvc) portssvc.ActivitySvcFacade {
	return &activityService{
		activityRepo: activityRepo,
		teamSvc:      teamSvc,
	}
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

// ListActivities retrieves a team's audit entries newest first.
func (s *activityService) ListActivities(ctx context.Context, teamID string, requestingUserID string, limit int, nextToken *string) ([]domain.Activity, *string, error) {
	if err := s.teamSvc.AuthorizeTeamAction(ctx, requestingUserID, teamID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	activities, token, err := s.activityRepo.ListActivitiesByTeam(ctx, teamID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, token, nil
}
