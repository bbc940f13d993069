package services

import (
	"context"
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
)

// PeriodLockSvcFacade defines GST filing period lock operations.
type PeriodLockSvcFacade interface {
	// FileGstPeriod marks a filing period as filed, freezing balance
	// mutations for documents dated inside it. Requires admin role.
	FileGstPeriod(ctx context.Context, teamID string, req dto.FileGstPeriodRequest, actingUserID string) (*domain.GstPeriodLock, error)

	// ListPeriodLocks retrieves a team's period locks, newest first.
	ListPeriodLocks(ctx context.Context, teamID string, requestingUserID string) ([]domain.GstPeriodLock, error)

	// AssertDateMutable returns apperrors.ErrLockedPeriod when the date falls
	// inside a filed period.
	AssertDateMutable(ctx context.Context, teamID string, date time.Time) error
}
