package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetOutstandingSummary aggregates open receivables, payables and unallocated
// advance balances for a team in a single round trip.
func (r *reportingRepository) GetOutstandingSummary(ctx context.Context, teamID string) (*domain.OutstandingSummary, error) {
	query := `
		SELECT
			COALESCE((SELECT COUNT(*) FROM documents
				WHERE team_id = $1 AND kind = 'INVOICE' AND status = 'ISSUED' AND amount_due > 0), 0),
			COALESCE((SELECT SUM(amount_due) FROM documents
				WHERE team_id = $1 AND kind = 'INVOICE' AND status = 'ISSUED' AND amount_due > 0), 0),
			COALESCE((SELECT COUNT(*) FROM documents
				WHERE team_id = $1 AND kind = 'SUPPLIER_BILL' AND status = 'ISSUED' AND amount_due > 0), 0),
			COALESCE((SELECT SUM(amount_due) FROM documents
				WHERE team_id = $1 AND kind = 'SUPPLIER_BILL' AND status = 'ISSUED' AND amount_due > 0), 0),
			COALESCE((SELECT SUM(unallocated_amount) FROM advances
				WHERE team_id = $1 AND direction = 'RECEIVED'), 0),
			COALESCE((SELECT SUM(unallocated_amount) FROM advances
				WHERE team_id = $1 AND direction = 'PAID'), 0);
	`

	var summary domain.OutstandingSummary
	err := r.Pool.QueryRow(ctx, query, teamID).Scan(
		&summary.ReceivableCount,
		&summary.ReceivableDue,
		&summary.PayableCount,
		&summary.PayableDue,
		&summary.UnallocatedReceived,
		&summary.UnallocatedPaid,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to build outstanding summary for team "+teamID, err)
	}
	return &summary, nil
}
