package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	"github.com/drukbooks/gst_ledger_app/internal/models"
	"github.com/drukbooks/gst_ledger_app/internal/utils/mapping"
)

type PgxAdjustmentRepository struct {
	BaseRepository
	allowNegativeDue bool
}

// newPgxAdjustmentRepository creates a new repository for adjustment data.
func newPgxAdjustmentRepository(pool *pgxpool.Pool, allowNegativeDue bool) portsrepo.AdjustmentRepositoryFacade {
	return &PgxAdjustmentRepository{
		BaseRepository:   BaseRepository{Pool: pool},
		allowNegativeDue: allowNegativeDue,
	}
}

var _ portsrepo.AdjustmentRepositoryFacade = (*PgxAdjustmentRepository)(nil)

// SaveAdjustment inserts the adjustment and recomputes the document balance
// under the document's row lock.
func (r *PgxAdjustmentRepository) SaveAdjustment(ctx context.Context, adjustment domain.Adjustment, activity domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	doc, err := lockDocumentForUpdate(ctx, tx, adjustment.DocumentID)
	if err != nil {
		return err
	}

	m := mapping.ToModelAdjustment(adjustment)
	query := `
		INSERT INTO adjustments (adjustment_id, team_id, document_id, adjustment_type, signed_amount,
			description, adjustment_date, reference_number,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.AdjustmentID,
		m.TeamID,
		m.DocumentID,
		m.Type,
		m.SignedAmount,
		m.Description,
		m.AdjustmentDate,
		m.ReferenceNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert adjustment "+m.AdjustmentID, err)
	}

	if err := recomputeDocumentInTx(ctx, tx, doc, adjustment.CreatedBy, time.Now().UTC(), r.allowNegativeDue); err != nil {
		return err
	}
	if err := insertActivityInTx(ctx, tx, activity); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteAdjustment removes the adjustment and restores the document's prior
// due under the row lock.
func (r *PgxAdjustmentRepository) DeleteAdjustment(ctx context.Context, adjustment domain.Adjustment, activity domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	doc, err := lockDocumentForUpdate(ctx, tx, adjustment.DocumentID)
	if err != nil {
		return err
	}

	ct, err := tx.Exec(ctx, `DELETE FROM adjustments WHERE adjustment_id = $1;`, adjustment.AdjustmentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete adjustment "+adjustment.AdjustmentID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := recomputeDocumentInTx(ctx, tx, doc, activity.ActorID, time.Now().UTC(), r.allowNegativeDue); err != nil {
		return err
	}
	if err := insertActivityInTx(ctx, tx, activity); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindAdjustmentByID retrieves an adjustment by ID.
func (r *PgxAdjustmentRepository) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error) {
	query := `
		SELECT adjustment_id, team_id, document_id, adjustment_type, signed_amount,
		       description, adjustment_date, reference_number,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM adjustments
		WHERE adjustment_id = $1;
	`
	var m models.Adjustment
	err := r.Pool.QueryRow(ctx, query, adjustmentID).Scan(
		&m.AdjustmentID,
		&m.TeamID,
		&m.DocumentID,
		&m.Type,
		&m.SignedAmount,
		&m.Description,
		&m.AdjustmentDate,
		&m.ReferenceNumber,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find adjustment by ID "+adjustmentID, err)
	}
	d := mapping.ToDomainAdjustment(m)
	return &d, nil
}

// ListAdjustmentsByDocument retrieves all adjustments on a document,
// newest first.
func (r *PgxAdjustmentRepository) ListAdjustmentsByDocument(ctx context.Context, documentID string) ([]domain.Adjustment, error) {
	query := `
		SELECT adjustment_id, team_id, document_id, adjustment_type, signed_amount,
		       description, adjustment_date, reference_number,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM adjustments
		WHERE document_id = $1
		ORDER BY adjustment_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query adjustments for document "+documentID, err)
	}
	defer rows.Close()

	adjustments := []models.Adjustment{}
	for rows.Next() {
		var m models.Adjustment
		err := rows.Scan(
			&m.AdjustmentID,
			&m.TeamID,
			&m.DocumentID,
			&m.Type,
			&m.SignedAmount,
			&m.Description,
			&m.AdjustmentDate,
			&m.ReferenceNumber,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan adjustment row for document "+documentID, err)
		}
		adjustments = append(adjustments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating adjustment rows for document "+documentID, err)
	}

	return mapping.ToDomainAdjustmentSlice(adjustments), nil
}
