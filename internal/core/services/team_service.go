package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
)

// teamService provides team and membership operations.
type teamService struct {
	teamRepo portsrepo.TeamRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo portsrepo.TeamRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.TeamSvcFacade {
	return &teamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

var _ portssvc.TeamSvcFacade = (*teamService)(nil)

// CreateTeam creates a new team and makes the creator the initial admin.
func (s *teamService) CreateTeam(ctx context.Context, req dto.CreateTeamRequest, creatorUserID string) (*domain.Team, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	team := domain.Team{
		TeamID:              uuid.NewString(),
		Name:                req.Name,
		GstNumber:           req.GstNumber,
		DefaultCurrencyCode: req.DefaultCurrencyCode,
		IsActive:            true,
		AuditFields:         audit,
	}
	creatorMembership := domain.TeamMember{
		UserID:      creatorUserID,
		TeamID:      team.TeamID,
		Role:        domain.RoleAdmin,
		AuditFields: audit,
	}

	if err := s.teamRepo.SaveTeam(ctx, team, creatorMembership); err != nil {
		logger.Error("Failed to save team", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save team: %w", err)
	}

	logger.Info("Team created", slog.String("team_id", team.TeamID), slog.String("creator_user_id", creatorUserID))
	return &team, nil
}

// FindTeamByID retrieves a team, requiring the requester to be a member.
func (s *teamService) FindTeamByID(ctx context.Context, teamID string, requestingUserID string) (*domain.Team, error) {
	if err := s.AuthorizeTeamAction(ctx, requestingUserID, teamID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to find team %s: %w", teamID, err)
	}
	return team, nil
}

// ListUserTeams retrieves all teams the user belongs to.
func (s *teamService) ListUserTeams(ctx context.Context, userID string) ([]domain.Team, error) {
	teams, err := s.teamRepo.ListTeamsByUserID(ctx, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list teams for user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// AddUserToTeam adds a user to a team. Only admins may add members.
func (s *teamService) AddUserToTeam(ctx context.Context, addingUserID string, teamID string, req dto.AddTeamMemberRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeTeamAction(ctx, addingUserID, teamID, domain.RoleAdmin); err != nil {
		logger.Warn("User not authorized to add members", slog.String("adding_user_id", addingUserID), slog.String("team_id", teamID))
		return err
	}

	// The target user must exist
	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s not found", apperrors.ErrValidation, req.UserID)
		}
		return fmt.Errorf("failed to find user %s: %w", req.UserID, err)
	}

	now := time.Now().UTC()
	membership := domain.TeamMember{
		UserID: req.UserID,
		TeamID: teamID,
		Role:   req.Role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     addingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: addingUserID,
		},
	}
	if err := s.teamRepo.AddTeamMember(ctx, membership); err != nil {
		logger.Error("Failed to add team member", slog.String("error", err.Error()), slog.String("team_id", teamID), slog.String("target_user_id", req.UserID))
		return err
	}

	logger.Info("User added to team", slog.String("team_id", teamID), slog.String("target_user_id", req.UserID), slog.String("role", string(req.Role)))
	return nil
}

// AuthorizeTeamAction checks that the user holds at least requiredRole in the
// team. Non-members get ErrNotFound so team existence is not leaked.
func (s *teamService) AuthorizeTeamAction(ctx context.Context, userID string, teamID string, requiredRole domain.TeamRole) error {
	membership, err := s.teamRepo.FindTeamMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		middleware.GetLoggerFromCtx(ctx).Error("Failed to find team membership", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("team_id", teamID))
		return err
	}
	if !membership.Role.CanPerform(requiredRole) {
		return apperrors.ErrForbidden
	}
	return nil
}
