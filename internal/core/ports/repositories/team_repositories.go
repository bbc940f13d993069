package repositories

import (
	"context"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// TeamReader defines read operations for team data
type TeamReader interface {
	// FindTeamByID retrieves a specific team by its ID.
	FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error)

	// ListTeamsByUserID retrieves all teams a user belongs to.
	ListTeamsByUserID(ctx context.Context, userID string) ([]domain.Team, error)
}

// TeamWriter defines write operations for team data
type TeamWriter interface {
	// SaveTeam persists a new team and its creating admin membership atomically.
	SaveTeam(ctx context.Context, team domain.Team, creatorMembership domain.TeamMember) error
}

// TeamMembershipManager defines operations for managing team memberships
type TeamMembershipManager interface {
	// AddTeamMember adds a user to a team with a specific role.
	AddTeamMember(ctx context.Context, membership domain.TeamMember) error

	// FindTeamMember retrieves the membership of a user in a team.
	FindTeamMember(ctx context.Context, teamID, userID string) (*domain.TeamMember, error)
}

// TeamRepositoryFacade combines all team-related repository interfaces
type TeamRepositoryFacade interface {
	TeamReader
	TeamWriter
	TeamMembershipManager
}
