package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	"github.com/drukbooks/gst_ledger_app/internal/models"
	"github.com/drukbooks/gst_ledger_app/internal/utils/mapping"
)

type PgxPeriodLockRepository struct {
	BaseRepository
}

// newPgxPeriodLockRepository creates a new repository for GST period locks.
func newPgxPeriodLockRepository(pool *pgxpool.Pool) portsrepo.PeriodLockRepositoryFacade {
	return &PgxPeriodLockRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PeriodLockRepositoryFacade = (*PgxPeriodLockRepository)(nil)

// SavePeriodLock files a new period. The overlap check and the insert run in
// one transaction; existing lock rows for the team are locked first so two
// concurrent filings of overlapping periods cannot both pass the check.
func (r *PgxPeriodLockRepository) SavePeriodLock(ctx context.Context, lock domain.GstPeriodLock, activity domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var overlapCount int
	overlapQuery := `
		SELECT COUNT(*)
		FROM (SELECT period_start, period_end FROM gst_period_locks WHERE team_id = $1 FOR UPDATE) existing
		WHERE existing.period_start <= $3 AND existing.period_end >= $2;
	`
	if err := tx.QueryRow(ctx, overlapQuery, lock.TeamID, lock.PeriodStart, lock.PeriodEnd).Scan(&overlapCount); err != nil {
		return apperrors.NewAppError(500, "failed to check period overlap for team "+lock.TeamID, err)
	}
	if overlapCount > 0 {
		return fmt.Errorf("%w: period %s to %s overlaps an already filed period",
			apperrors.ErrValidation, lock.PeriodStart.Format("2006-01-02"), lock.PeriodEnd.Format("2006-01-02"))
	}

	m := mapping.ToModelPeriodLock(lock)
	insertQuery := `
		INSERT INTO gst_period_locks (period_lock_id, team_id, period_start, period_end, filed_at, filed_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.PeriodLockID,
		m.TeamID,
		m.PeriodStart,
		m.PeriodEnd,
		m.FiledAt,
		m.FiledBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert period lock "+m.PeriodLockID, err)
	}

	if err := insertActivityInTx(ctx, tx, activity); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ListPeriodLocksByTeam retrieves all filed periods for a team, newest first.
func (r *PgxPeriodLockRepository) ListPeriodLocksByTeam(ctx context.Context, teamID string) ([]domain.GstPeriodLock, error) {
	query := `
		SELECT period_lock_id, team_id, period_start, period_end, filed_at, filed_by
		FROM gst_period_locks
		WHERE team_id = $1
		ORDER BY period_start DESC;
	`
	rows, err := r.Pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query period locks for team "+teamID, err)
	}
	defer rows.Close()

	locks := []models.GstPeriodLock{}
	for rows.Next() {
		var m models.GstPeriodLock
		if err := rows.Scan(&m.PeriodLockID, &m.TeamID, &m.PeriodStart, &m.PeriodEnd, &m.FiledAt, &m.FiledBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period lock row for team "+teamID, err)
		}
		locks = append(locks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period lock rows for team "+teamID, err)
	}

	results := make([]domain.GstPeriodLock, len(locks))
	for i, m := range locks {
		results[i] = mapping.ToDomainPeriodLock(m)
	}
	return results, nil
}

// IsDateLocked reports whether the date falls inside any filed period.
func (r *PgxPeriodLockRepository) IsDateLocked(ctx context.Context, teamID string, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM gst_period_locks
			WHERE team_id = $1 AND period_start <= $2 AND period_end >= $2
		);
	`
	var locked bool
	if err := r.Pool.QueryRow(ctx, query, teamID, date).Scan(&locked); err != nil {
		return false, apperrors.NewAppError(500, "failed to check period lock for team "+teamID, err)
	}
	return locked, nil
}
