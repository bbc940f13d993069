package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	"github.com/drukbooks/gst_ledger_app/internal/models"
	"github.com/drukbooks/gst_ledger_app/internal/utils/mapping"
	"github.com/drukbooks/gst_ledger_app/internal/utils/pagination"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for document and line item data.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, team_id, kind, counterparty_id, document_number, document_date,
	currency_code, total_amount, amount_paid, amount_due, status, payment_status, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (*models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.TeamID,
		&m.Kind,
		&m.CounterpartyID,
		&m.DocumentNumber,
		&m.DocumentDate,
		&m.CurrencyCode,
		&m.TotalAmount,
		&m.AmountPaid,
		&m.AmountDue,
		&m.Status,
		&m.PaymentStatus,
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

// SaveDocument persists a new draft document with its line items atomically.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document, lines []domain.LineItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDocument(document)
	docQuery := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, docQuery,
		m.DocumentID,
		m.TeamID,
		m.Kind,
		m.CounterpartyID,
		m.DocumentNumber,
		m.DocumentDate,
		m.CurrencyCode,
		m.TotalAmount,
		m.AmountPaid,
		m.AmountDue,
		m.Status,
		m.PaymentStatus,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert document "+m.DocumentID, err)
	}

	if err := insertLineItemsInTx(ctx, tx, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertLineItemsInTx(ctx context.Context, tx pgx.Tx, lines []domain.LineItem) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO line_items (line_item_id, document_id, description, quantity, unit_price, amount)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range lines {
		lm := mapping.ToModelLineItem(line)
		batch.Queue(lineQuery, lm.LineItemID, lm.DocumentID, lm.Description, lm.Quantity, lm.UnitPrice, lm.Amount)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert line items", err)
	}
	return nil
}

// ReplaceDocumentLines swaps a draft document's full line set and rewrites
// its totals in one transaction. The row lock keeps a concurrent payment from
// seeing a half-replaced total.
func (r *PgxDocumentRepository) ReplaceDocumentLines(ctx context.Context, document domain.Document, lines []domain.LineItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockDocumentForUpdate(ctx, tx, document.DocumentID)
	if err != nil {
		return err
	}
	if locked.Status != models.StatusDraft {
		return apperrors.ErrInvalidTransition
	}

	if _, err := tx.Exec(ctx, `DELETE FROM line_items WHERE document_id = $1;`, document.DocumentID); err != nil {
		return apperrors.NewAppError(500, "failed to clear line items for document "+document.DocumentID, err)
	}
	if err := insertLineItemsInTx(ctx, tx, lines); err != nil {
		return err
	}

	m := mapping.ToModelDocument(document)
	updateQuery := `
		UPDATE documents
		SET document_number = $2, document_date = $3, notes = $4,
		    total_amount = $5, amount_due = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE document_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		m.DocumentID,
		m.DocumentNumber,
		m.DocumentDate,
		m.Notes,
		m.TotalAmount,
		m.AmountDue,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update document totals for "+m.DocumentID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateDocumentDetails updates non-monetary header fields.
func (r *PgxDocumentRepository) UpdateDocumentDetails(ctx context.Context, document domain.Document) error {
	m := mapping.ToModelDocument(document)
	query := `
		UPDATE documents
		SET document_number = $2, document_date = $3, notes = $4, last_updated_at = $5, last_updated_by = $6
		WHERE document_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.DocumentID,
		m.DocumentNumber,
		m.DocumentDate,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update document "+m.DocumentID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateDocumentStatus applies a status change and records the audit row in
// the same transaction.
func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, userID string, at time.Time, activity domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE documents
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $1;
	`
	ct, err := tx.Exec(ctx, query, documentID, string(status), at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for document "+documentID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertActivityInTx(ctx, tx, activity); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindDocumentByID retrieves a document without line items.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document by ID "+documentID, err)
	}
	d := mapping.ToDomainDocument(*m)
	return &d, nil
}

// FindLineItemsByDocumentID retrieves the line items of a document.
func (r *PgxDocumentRepository) FindLineItemsByDocumentID(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	query := `
		SELECT line_item_id, document_id, description, quantity, unit_price, amount
		FROM line_items
		WHERE document_id = $1
		ORDER BY line_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for document "+documentID, err)
	}
	defer rows.Close()

	lines := []models.LineItem{}
	for rows.Next() {
		var l models.LineItem
		if err := rows.Scan(&l.LineItemID, &l.DocumentID, &l.Description, &l.Quantity, &l.UnitPrice, &l.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row for document "+documentID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows for document "+documentID, err)
	}

	return mapping.ToDomainLineItemSlice(lines), nil
}

// ListDocumentsByTeam retrieves a paginated list of documents using
// token-based pagination ordered by document date, newest first.
func (r *PgxDocumentRepository) ListDocumentsByTeam(ctx context.Context, teamID string, filter portsrepo.DocumentListFilter, limit int, nextToken *string) ([]domain.Document, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + documentColumns + ` FROM documents WHERE team_id = $1`
	args := []interface{}{teamID}

	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		baseQuery += ` AND kind = $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		baseQuery += ` AND status = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDocumentDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDocumentDate, lastCreatedAt)
		baseQuery += ` AND (document_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY document_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query documents for team "+teamID, err)
	}
	defer rows.Close()

	documents := make([]models.Document, 0, fetchLimit)
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan document row for team "+teamID, err)
		}
		documents = append(documents, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating document rows for team "+teamID, err)
	}

	var nextTokenVal *string
	if len(documents) > limit {
		last := documents[limit-1]
		token := pagination.EncodeToken(last.DocumentDate, last.CreatedAt)
		nextTokenVal = &token
		documents = documents[:limit]
	}

	results := make([]domain.Document, len(documents))
	for i, m := range documents {
		results[i] = mapping.ToDomainDocument(m)
	}
	return results, nextTokenVal, nil
}
