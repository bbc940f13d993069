package services

import (
	"context"
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

// periodLockService manages GST filing period locks.
type periodLockService struct {
	lockRepo portsrepo.PeriodLockRepositoryFacade
	teamSvc  portssvc.TeamAuthorizerSvc
}

// NewPeriodLockService creates a new PeriodLockService.
func NewPeriodLockService(lockRepo portsrepo.PeriodLockRepositoryFacade, teamSvc portssvc.TeamAuthorizerSvc) portssvc.PeriodLockSvcFacade {
	return &periodLockService{
		lockRepo: lockRepo,
		teamSvc:  teamSvc,
	}
}

var _ portssvc.PeriodLockSvcFacade = (*periodLockService)(nil)

// FileGstPeriod files a GST return period for the team. Filing is admin-only
// and irreversible; the overlap check runs inside the repository transaction.
func (s *periodLockService) FileGstPeriod(ctx context.Context, teamID string, req dto.FileGstPeriodRequest, actingUserID string) (*domain.GstPeriodLock, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, actingUserID, teamID, domain.RoleAdmin); err != nil {
		logger.Warn("Authorization failed for FileGstPeriod", slog.String("user_id", actingUserID), slog.String("team_id", teamID))
		return nil, err
	}

	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, fmt.Errorf("%w: period end %s precedes period start %s", apperrors.ErrValidation,
			req.PeriodEnd.Format("2006-01-02"), req.PeriodStart.Format("2006-01-02"))
	}

	now := time.Now().UTC()
	lock := domain.GstPeriodLock{
		PeriodLockID: uuid.NewString(),
		TeamID:       teamID,
		PeriodStart:  req.PeriodStart,
		PeriodEnd:    req.PeriodEnd,
		FiledAt:      now,
		FiledBy:      actingUserID,
	}

	activity := domain.Activity{
		ActivityID: uuid.NewString(),
		TeamID:     teamID,
		ActorID:    actingUserID,
		Action:     domain.ActionFileGstPeriod,
		EntityKind: "period_lock",
		EntityID:   lock.PeriodLockID,
		Detail:     fmt.Sprintf("filed %s to %s", lock.PeriodStart.Format("2006-01-02"), lock.PeriodEnd.Format("2006-01-02")),
		CreatedAt:  now,
	}

	if err := s.lockRepo.SavePeriodLock(ctx, lock, activity); err != nil {
		logger.Error("Failed to save period lock", slog.String("error", err.Error()), slog.String("team_id", teamID))
		return nil, fmt.Errorf("failed to file period: %w", err)
	}

	logger.Info("GST period filed", slog.String("team_id", teamID), slog.String("period_lock_id", lock.PeriodLockID))
	return &lock, nil
}

// ListPeriodLocks retrieves a team's filed periods.
func (s *periodLockService) ListPeriodLocks(ctx context.Context, teamID string, requestingUserID string) ([]domain.GstPeriodLock, error) {
	if err := s.teamSvc.AuthorizeTeamAction(ctx, requestingUserID, teamID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	locks, err := s.lockRepo.ListPeriodLocksByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list period locks: %w", err)
	}
	return locks, nil
}

// AssertDateMutable rejects balance mutations dated inside a filed period.
func (s *periodLockService) AssertDateMutable(ctx context.Context, teamID string, date time.Time) error {
	locked, err := s.lockRepo.IsDateLocked(ctx, teamID, date)
	if err != nil {
		return fmt.Errorf("failed to check period lock: %w", err)
	}
	if locked {
		return fmt.Errorf("%w: date %s falls in a filed GST period", apperrors.ErrLockedPeriod, date.Format("2006-01-02"))
	}
	return nil
}
