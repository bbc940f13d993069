package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	"github.com/drukbooks/gst_ledger_app/internal/models"
	"github.com/drukbooks/gst_ledger_app/internal/utils/ledger"
	"github.com/drukbooks/gst_ledger_app/internal/utils/mapping"
)

// lockDocumentForUpdate retrieves a document row and locks it for the
// remainder of the transaction. Every balance mutation goes through this
// lock, which is what serialises concurrent payments and allocations against
// the same document.
func lockDocumentForUpdate(ctx context.Context, tx pgx.Tx, documentID string) (*models.Document, error) {
	query := `
		SELECT document_id, team_id, kind, counterparty_id, document_number, document_date,
		       currency_code, total_amount, amount_paid, amount_due, status, payment_status, notes,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM documents
		WHERE document_id = $1
		FOR UPDATE;
	`
	var m models.Document
	err := tx.QueryRow(ctx, query, documentID).Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock document "+documentID, err)
	}
	return &m, nil
}

// recomputeDocumentInTx re-derives a locked document's balance columns from
// the actual ledger rows and applies the automatic status transitions. The
// caller must hold the document's row lock.
func recomputeDocumentInTx(ctx context.Context, tx pgx.Tx, doc *models.Document, userID string, now time.Time, allowNegativeDue bool) error {
	sumsQuery := `
		SELECT
			COALESCE((SELECT SUM(amount) FROM payments WHERE document_id = $1), 0),
			COALESCE((SELECT SUM(amount) FROM allocations WHERE document_id = $1), 0),
			COALESCE((SELECT SUM(signed_amount) FROM adjustments WHERE document_id = $1), 0);
	`
	var paymentSum, allocationSum, adjustmentSum decimal.Decimal
	if err := tx.QueryRow(ctx, sumsQuery, doc.DocumentID).Scan(&paymentSum, &allocationSum, &adjustmentSum); err != nil {
		return apperrors.NewAppError(500, "failed to sum ledger entries for document "+doc.DocumentID, err)
	}

	balance := ledger.RecomputeFromSums(doc.TotalAmount, paymentSum, allocationSum, adjustmentSum)
	if !allowNegativeDue && balance.AmountDue.IsNegative() {
		return fmt.Errorf("%w: document %s would go %s past zero due",
			apperrors.ErrOverAllocation, doc.DocumentID, balance.AmountDue.Abs().String())
	}

	nextStatus := ledger.NextStatus(domain.DocumentStatus(doc.Status), balance)

	updateQuery := `
		UPDATE documents
		SET amount_paid = $2, amount_due = $3, payment_status = $4, status = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE document_id = $1;
	`
	ct, err := tx.Exec(ctx, updateQuery,
		doc.DocumentID,
		balance.AmountPaid,
		balance.AmountDue,
		string(balance.PaymentStatus),
		string(nextStatus),
		now,
		userID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for document "+doc.DocumentID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: document %s vanished during balance update", apperrors.ErrNotFound, doc.DocumentID)
	}

	doc.AmountPaid = balance.AmountPaid
	doc.AmountDue = balance.AmountDue
	doc.PaymentStatus = models.PaymentStatus(balance.PaymentStatus)
	doc.Status = models.DocumentStatus(nextStatus)
	return nil
}

// insertActivityInTx appends one audit record inside the caller's transaction
// so the mutation and its evidence commit together.
func insertActivityInTx(ctx context.Context, tx pgx.Tx, activity domain.Activity) error {
	m := mapping.ToModelActivity(activity)
	query := `
		INSERT INTO activity_log (activity_id, team_id, actor_id, action, entity_kind, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		m.ActivityID,
		m.TeamID,
		m.ActorID,
		m.Action,
		m.EntityKind,
		m.EntityID,
		m.Detail,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert activity record "+m.ActivityID, err)
	}
	return nil
}
