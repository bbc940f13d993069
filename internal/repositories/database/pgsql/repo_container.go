package pgsql

import (
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider assembles all pgsql repositories. allowNegativeDue
// relaxes the zero floor on document dues for teams that track overpayments.
func NewRepositoryProvider(dbPool *pgxpool.Pool, allowNegativeDue bool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	teamRepo := newPgxTeamRepository(dbPool)
	documentRepo := newPgxDocumentRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool, allowNegativeDue)
	adjustmentRepo := newPgxAdjustmentRepository(dbPool, allowNegativeDue)
	advanceRepo := newPgxAdvanceRepository(dbPool, allowNegativeDue)
	periodLockRepo := newPgxPeriodLockRepository(dbPool)
	activityRepo := newPgxActivityRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:       userRepo,
		TeamRepo:       teamRepo,
		DocumentRepo:   documentRepo,
		PaymentRepo:    paymentRepo,
		AdjustmentRepo: adjustmentRepo,
		AdvanceRepo:    advanceRepo,
		PeriodLockRepo: periodLockRepo,
		ActivityRepo:   activityRepo,
		ReportingRepo:  reportingRepo,
	}
}
