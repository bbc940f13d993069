package services

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
)

// TeamSvcFacade defines operations on teams and memberships. Every core
// operation receives an explicit team ID; there is no ambient tenant state.
type TeamSvcFacade interface {
	// CreateTeam creates a team with the creator as admin.
	CreateTeam(ctx context.Context, req dto.CreateTeamRequest, creatorUserID string) (*domain.Team, error)

	// FindTeamByID retrieves a team the requesting user belongs to.
	FindTeamByID(ctx context.Context, teamID string, requestingUserID string) (*domain.Team, error)

	// ListUserTeams retrieves all teams the user belongs to.
	ListUserTeams(ctx context.Context, userID string) ([]domain.Team, error)

	// AddUserToTeam adds a user to a team; requires admin role.
	AddUserToTeam(ctx context.Context, addingUserID string, teamID string, req dto.AddTeamMemberRequest) error

	// AuthorizeTeamAction verifies the user holds at least requiredRole in the
	// team. Returns apperrors.ErrNotFound for non-members (to obscure
	// existence) and apperrors.ErrForbidden for insufficient role.
	AuthorizeTeamAction(ctx context.Context, userID string, teamID string, requiredRole domain.TeamRole) error
}
