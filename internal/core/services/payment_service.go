package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
)

// paymentService provides direct payment operations.
type paymentService struct {
	paymentRepo  portsrepo.PaymentRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
	teamSvc      portssvc.TeamAuthorizerSvc
	lockSvc      portssvc.PeriodLockSvcFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, documentRepo portsrepo.DocumentRepositoryFacade, teamSvc portssvc.TeamAuthorizerSvc, lockSvc portssvc.PeriodLockSvcFacade) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:  paymentRepo,
		documentRepo: documentRepo,
		teamSvc:      teamSvc,
		lockSvc:      lockSvc,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// payableDocument fetches the document and verifies it can take balance
// mutations: owned by the team, balance-bearing kind, issued, and not dated
// inside a filed GST period.
func (s *paymentService) payableDocument(ctx context.Context, teamID, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	if doc.TeamID != teamID {
		return nil, apperrors.ErrNotFound
	}
	if !doc.Kind.BearsBalance() {
		return nil, fmt.Errorf("%w: %s documents carry no balance", apperrors.ErrValidation, doc.Kind)
	}
	if doc.Status != domain.StatusIssued && doc.Status != domain.StatusPaid {
		return nil, fmt.Errorf("%w: document %s is %s", apperrors.ErrInvalidTransition, documentID, doc.Status)
	}
	if err := s.lockSvc.AssertDateMutable(ctx, teamID, doc.DocumentDate); err != nil {
		return nil, err
	}
	return doc, nil
}

// RecordPayment records a payment against an issued document. The balance is
// recomputed and the document may auto-transition to paid, all within the
// repository transaction.
func (s *paymentService) RecordPayment(ctx context.Context, teamID string, req dto.RecordPaymentRequest, actingUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, actingUserID, teamID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for RecordPayment", slog.String("user_id", actingUserID), slog.String("team_id", teamID))
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	doc, err := s.payableDocument(ctx, teamID, req.DocumentID)
	if err != nil {
		return nil, err
	}

	// Advisory pre-check; the repository re-checks under the document row lock.
	if req.Amount.GreaterThan(doc.AmountDue) {
		logger.Debug("Payment exceeds current amount due, deferring to row-lock check",
			slog.String("document_id", req.DocumentID),
			slog.String("amount", req.Amount.String()),
			slog.String("amount_due", doc.AmountDue.String()))
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		TeamID:          teamID,
		DocumentID:      req.DocumentID,
		Amount:          req.Amount,
		PaymentDate:     req.PaymentDate,
		Method:          req.Method,
		ReferenceNumber: req.ReferenceNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	activity := domain.Activity{
		ActivityID: uuid.NewString(),
		TeamID:     teamID,
		ActorID:    actingUserID,
		Action:     domain.ActionRecordPayment,
		EntityKind: "payment",
		EntityID:   payment.PaymentID,
		Detail:     fmt.Sprintf("%s %s against document %s", payment.Amount.String(), doc.CurrencyCode, doc.DocumentID),
		CreatedAt:  now,
	}

	if err := s.paymentRepo.SavePayment(ctx, payment, activity); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()), slog.String("document_id", req.DocumentID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	logger.Info("Payment recorded", slog.String("payment_id", payment.PaymentID), slog.String("document_id", req.DocumentID), slog.String("amount", payment.Amount.String()))
	return &payment, nil
}

// DeletePayment removes a payment and reverses its balance effect. A paid
// document reopens to issued when the deletion leaves a remainder.
func (s *paymentService) DeletePayment(ctx context.Context, teamID string, paymentID string, actingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, actingUserID, teamID, domain.RoleMember); err != nil {
		return err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	if payment.TeamID != teamID {
		return apperrors.ErrNotFound
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, payment.DocumentID)
	if err != nil {
		return fmt.Errorf("failed to find document %s: %w", payment.DocumentID, err)
	}
	if err := s.lockSvc.AssertDateMutable(ctx, teamID, doc.DocumentDate); err != nil {
		return err
	}

	activity := domain.Activity{
		ActivityID: uuid.NewString(),
		TeamID:     teamID,
		ActorID:    actingUserID,
		Action:     domain.ActionDeletePayment,
		EntityKind: "payment",
		EntityID:   paymentID,
		Detail:     fmt.Sprintf("removed %s from document %s", payment.Amount.String(), payment.DocumentID),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.paymentRepo.DeletePayment(ctx, *payment, activity); err != nil {
		logger.Error("Failed to delete payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	logger.Info("Payment deleted", slog.String("payment_id", paymentID), slog.String("document_id", payment.DocumentID))
	return nil
}

// ListPaymentsByDocument retrieves a document's payments.
func (s *paymentService) ListPaymentsByDocument(ctx context.Context, teamID string, documentID string, requestingUserID string) ([]domain.Payment, error) {
	if err := s.teamSvc.AuthorizeTeamAction(ctx, requestingUserID, teamID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	if doc.TeamID != teamID {
		return nil, apperrors.ErrNotFound
	}
	payments, err := s.paymentRepo.ListPaymentsByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
