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

type PgxPaymentRepository struct {
	BaseRepository
	allowNegativeDue bool
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool, allowNegativeDue bool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository:   BaseRepository{Pool: pool},
		allowNegativeDue: allowNegativeDue,
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// SavePayment inserts the payment, recomputes the document balance under the
// document's row lock and records the audit row, all in one transaction.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, activity domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	doc, err := lockDocumentForUpdate(ctx, tx, payment.DocumentID)
	if err != nil {
		return err
	}

	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (payment_id, team_id, document_id, amount, payment_date, method, reference_number,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.PaymentID,
		m.TeamID,
		m.DocumentID,
		m.Amount,
		m.PaymentDate,
		m.Method,
		m.ReferenceNumber,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}

	if err := recomputeDocumentInTx(ctx, tx, doc, payment.CreatedBy, time.Now().UTC(), r.allowNegativeDue); err != nil {
		return err
	}
	if err := insertActivityInTx(ctx, tx, activity); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeletePayment removes the payment and reverses its balance effect under the
// document's row lock.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, payment domain.Payment, activity domain.Activity) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	doc, err := lockDocumentForUpdate(ctx, tx, payment.DocumentID)
	if err != nil {
		return err
	}

	ct, err := tx.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, payment.PaymentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete payment "+payment.PaymentID, err)
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

// FindPaymentByID retrieves a payment by ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT payment_id, team_id, document_id, amount, payment_date, method, reference_number,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE payment_id = $1;
	`
	var m models.Payment
	err := r.Pool.QueryRow(ctx, query, paymentID).Scan(
		&m.PaymentID,
		&m.TeamID,
		&m.DocumentID,
		&m.Amount,
		&m.PaymentDate,
		&m.Method,
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
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}
	d := mapping.ToDomainPayment(m)
	return &d, nil
}

// ListPaymentsByDocument retrieves all payments applied to a document,
// newest first.
func (r *PgxPaymentRepository) ListPaymentsByDocument(ctx context.Context, documentID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, team_id, document_id, amount, payment_date, method, reference_number,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE document_id = $1
		ORDER BY payment_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for document "+documentID, err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var m models.Payment
		err := rows.Scan(
			&m.PaymentID,
			&m.TeamID,
			&m.DocumentID,
			&m.Amount,
			&m.PaymentDate,
			&m.Method,
			&m.ReferenceNumber,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for document "+documentID, err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for document "+documentID, err)
	}

	return mapping.ToDomainPaymentSlice(payments), nil
}
