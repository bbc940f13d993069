package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	"github.com/drukbooks/gst_ledger_app/internal/models"
	"github.com/drukbooks/gst_ledger_app/internal/utils/mapping"
	"github.com/drukbooks/gst_ledger_app/internal/utils/pagination"
)

type PgxAdvanceRepository struct {
	BaseRepository
	allowNegativeDue bool
}

// newPgxAdvanceRepository creates a new repository for advance and allocation data.
func newPgxAdvanceRepository(pool *pgxpool.Pool, allowNegativeDue bool) portsrepo.AdvanceRepositoryFacade {
	return &PgxAdvanceRepository{
		BaseRepository:   BaseRepository{Pool: pool},
		allowNegativeDue: allowNegativeDue,
	}
}

var _ portsrepo.AdvanceRepositoryFacade = (*PgxAdvanceRepository)(nil)

const advanceColumns = `advance_id, team_id, counterparty_id, direction, total_amount, unallocated_amount,
	advance_date, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanAdvance(row pgx.Row) (*models.Advance, error) {
	var m models.Advance
	err := row.Scan(
		&m.AdvanceID,
		&m.TeamID,
		&m.CounterpartyID,
		&m.Direction,
		&m.TotalAmount,
		&m.UnallocatedAmount,
		&m.AdvanceDate,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// lockAdvanceForUpdate locks the advance row. The advance lock is always
// taken before any document locks so concurrent allocators queue in a single
// order instead of deadlocking.
func lockAdvanceForUpdate(ctx context.Context, tx pgx.Tx, advanceID string) (*models.Advance, error) {
	query := `SELECT ` + advanceColumns + ` FROM advances WHERE advance_id = $1 FOR UPDATE;`
	m, err := scanAdvance(tx.QueryRow(ctx, query, advanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock advance "+advanceID, err)
	}
	return m, nil
}

// SaveAdvance persists a new advance with its audit record.
func (r *PgxAdvanceRepository) SaveAdvance(ctx context.Context, advance domain.Advance, activity domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelAdvance(advance)
	query := `
		INSERT INTO advances (` + advanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.AdvanceID,
		m.TeamID,
		m.CounterpartyID,
		m.Direction,
		m.TotalAmount,
		m.UnallocatedAmount,
		m.AdvanceDate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert advance "+m.AdvanceID, err)
	}

	if err := insertActivityInTx(ctx, tx, activity); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveAllocations applies a batch of allocations from one advance. The
// advance row is locked first and the remainder re-checked, then each target
// document is locked in a deterministic order, its due re-checked, the
// allocation inserted and the balance recomputed. Any failure rolls the whole
// batch back.
func (r *PgxAdvanceRepository) SaveAllocations(ctx context.Context, advanceID string, allocations []domain.Allocation, activity domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	advance, err := lockAdvanceForUpdate(ctx, tx, advanceID)
	if err != nil {
		return err
	}

	requested := decimal.Zero
	for _, a := range allocations {
		requested = requested.Add(a.Amount)
	}
	if requested.GreaterThan(advance.UnallocatedAmount) {
		return fmt.Errorf("%w: requested %s exceeds unallocated remainder %s on advance %s",
			apperrors.ErrOverAllocation, requested.String(), advance.UnallocatedAmount.String(), advanceID)
	}

	// Deterministic document lock order across concurrent batches.
	sorted := make([]domain.Allocation, len(allocations))
	copy(sorted, allocations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DocumentID < sorted[j].DocumentID
	})

	now := time.Now().UTC()
	allocQuery := `
		INSERT INTO allocations (allocation_id, advance_id, document_id, amount, allocated_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, allocation := range sorted {
		doc, err := lockDocumentForUpdate(ctx, tx, allocation.DocumentID)
		if err != nil {
			return err
		}
		if !r.allowNegativeDue && allocation.Amount.GreaterThan(doc.AmountDue) {
			return fmt.Errorf("%w: slice %s exceeds amount due %s on document %s",
				apperrors.ErrOverAllocation, allocation.Amount.String(), doc.AmountDue.String(), doc.DocumentID)
		}

		am := mapping.ToModelAllocation(allocation)
		_, err = tx.Exec(ctx, allocQuery,
			am.AllocationID,
			am.AdvanceID,
			am.DocumentID,
			am.Amount,
			am.AllocatedAt,
			am.CreatedAt,
			am.CreatedBy,
			am.LastUpdatedAt,
			am.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert allocation "+am.AllocationID, err)
		}

		if err := recomputeDocumentInTx(ctx, tx, doc, activity.ActorID, now, r.allowNegativeDue); err != nil {
			return err
		}
	}

	updateQuery := `
		UPDATE advances
		SET unallocated_amount = unallocated_amount - $2, last_updated_at = $3, last_updated_by = $4
		WHERE advance_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, advanceID, requested, now, activity.ActorID); err != nil {
		return apperrors.NewAppError(500, "failed to decrement remainder on advance "+advanceID, err)
	}

	if err := insertActivityInTx(ctx, tx, activity); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteAllocation reverses one allocation, restoring the advance remainder
// and recomputing the target document's balance atomically.
func (r *PgxAdvanceRepository) DeleteAllocation(ctx context.Context, allocation domain.Allocation, activity domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Advance first, then document: same order as SaveAllocations.
	if _, err := lockAdvanceForUpdate(ctx, tx, allocation.AdvanceID); err != nil {
		return err
	}
	doc, err := lockDocumentForUpdate(ctx, tx, allocation.DocumentID)
	if err != nil {
		return err
	}

	ct, err := tx.Exec(ctx, `DELETE FROM allocations WHERE allocation_id = $1;`, allocation.AllocationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete allocation "+allocation.AllocationID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	now := time.Now().UTC()
	updateQuery := `
		UPDATE advances
		SET unallocated_amount = unallocated_amount + $2, last_updated_at = $3, last_updated_by = $4
		WHERE advance_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, allocation.AdvanceID, allocation.Amount, now, activity.ActorID); err != nil {
		return apperrors.NewAppError(500, "failed to restore remainder on advance "+allocation.AdvanceID, err)
	}

	if err := recomputeDocumentInTx(ctx, tx, doc, activity.ActorID, now, r.allowNegativeDue); err != nil {
		return err
	}
	if err := insertActivityInTx(ctx, tx, activity); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteAdvance removes an advance with no remaining allocations. The
// allocation count is re-checked under the advance lock.
func (r *PgxAdvanceRepository) DeleteAdvance(ctx context.Context, advance domain.Advance, activity domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockAdvanceForUpdate(ctx, tx, advance.AdvanceID); err != nil {
		return err
	}

	var allocationCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM allocations WHERE advance_id = $1;`, advance.AdvanceID).Scan(&allocationCount); err != nil {
		return apperrors.NewAppError(500, "failed to count allocations for advance "+advance.AdvanceID, err)
	}
	if allocationCount > 0 {
		return fmt.Errorf("%w: advance %s still has %d allocation(s)", apperrors.ErrValidation, advance.AdvanceID, allocationCount)
	}

	ct, err := tx.Exec(ctx, `DELETE FROM advances WHERE advance_id = $1;`, advance.AdvanceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete advance "+advance.AdvanceID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertActivityInTx(ctx, tx, activity); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindAdvanceByID retrieves an advance by ID.
func (r *PgxAdvanceRepository) FindAdvanceByID(ctx context.Context, advanceID string) (*domain.Advance, error) {
	query := `SELECT ` + advanceColumns + ` FROM advances WHERE advance_id = $1;`
	m, err := scanAdvance(r.Pool.QueryRow(ctx, query, advanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find advance by ID "+advanceID, err)
	}
	d := mapping.ToDomainAdvance(*m)
	return &d, nil
}

// ListAdvancesByTeam retrieves a paginated list of a team's advances,
// newest first.
func (r *PgxAdvanceRepository) ListAdvancesByTeam(ctx context.Context, teamID string, limit int, nextToken *string) ([]domain.Advance, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + advanceColumns + ` FROM advances WHERE team_id = $1`
	args := []interface{}{teamID}

	if nextToken != nil && *nextToken != "" {
		lastAdvanceDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastAdvanceDate, lastCreatedAt)
		baseQuery += ` AND (advance_date, created_at) < ($2, $3)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY advance_date DESC, created_at DESC LIMIT $` + fmt.Sprint(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query advances for team "+teamID, err)
	}
	defer rows.Close()

	advances := make([]models.Advance, 0, fetchLimit)
	for rows.Next() {
		m, err := scanAdvance(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan advance row for team "+teamID, err)
		}
		advances = append(advances, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating advance rows for team "+teamID, err)
	}

	var nextTokenVal *string
	if len(advances) > limit {
		last := advances[limit-1]
		token := pagination.EncodeToken(last.AdvanceDate, last.CreatedAt)
		nextTokenVal = &token
		advances = advances[:limit]
	}

	results := make([]domain.Advance, len(advances))
	for i, m := range advances {
		results[i] = mapping.ToDomainAdvance(m)
	}
	return results, nextTokenVal, nil
}

const allocationColumns = `allocation_id, advance_id, document_id, amount, allocated_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAllocation(row pgx.Row) (*models.Allocation, error) {
	var m models.Allocation
	err := row.Scan(
		&m.AllocationID,
		&m.AdvanceID,
		&m.DocumentID,
		&m.Amount,
		&m.AllocatedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindAllocationByID retrieves an allocation by ID.
func (r *PgxAdvanceRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE allocation_id = $1;`
	m, err := scanAllocation(r.Pool.QueryRow(ctx, query, allocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find allocation by ID "+allocationID, err)
	}
	d := mapping.ToDomainAllocation(*m)
	return &d, nil
}

func (r *PgxAdvanceRepository) listAllocations(ctx context.Context, query, id string) ([]domain.Allocation, error) {
	rows, err := r.Pool.Query(ctx, query, id)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query allocations for "+id, err)
	}
	defer rows.Close()

	allocations := []models.Allocation{}
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation row for "+id, err)
		}
		allocations = append(allocations, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating allocation rows for "+id, err)
	}
	return mapping.ToDomainAllocationSlice(allocations), nil
}

// ListAllocationsByAdvance retrieves all allocations of an advance.
func (r *PgxAdvanceRepository) ListAllocationsByAdvance(ctx context.Context, advanceID string) ([]domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE advance_id = $1 ORDER BY allocated_at DESC;`
	return r.listAllocations(ctx, query, advanceID)
}

// ListAllocationsByDocument retrieves all allocations applied to a document.
func (r *PgxAdvanceRepository) ListAllocationsByDocument(ctx context.Context, documentID string) ([]domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE document_id = $1 ORDER BY allocated_at DESC;`
	return r.listAllocations(ctx, query, documentID)
}
