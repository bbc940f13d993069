package repositories

import (
	"context"
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// PeriodLockReader defines read operations for GST period locks
type PeriodLockReader interface {
	// ListPeriodLocksByTeam retrieves all filed periods for a team.
	ListPeriodLocksByTeam(ctx context.Context, teamID string) ([]domain.GstPeriodLock, error)

	// IsDateLocked reports whether the date falls inside any filed period.
	IsDateLocked(ctx context.Context, teamID string, date time.Time) (bool, error)
}

// PeriodLockWriter defines write operations for GST period locks
type PeriodLockWriter interface {
	// SavePeriodLock files a new period. The overlap check against existing
	// locks runs under lock in the same transaction as the insert; overlap
	// returns apperrors.ErrValidation.
	SavePeriodLock(ctx context.Context, lock domain.GstPeriodLock, activity domain.Activity) error
}

// PeriodLockRepositoryFacade combines all period-lock repository interfaces
type PeriodLockRepositoryFacade interface {
	PeriodLockReader
	PeriodLockWriter
}
