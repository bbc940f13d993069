package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/dto"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
)

// adjustmentService provides signed balance corrections on documents.
type adjustmentService struct {
	adjustmentRepo portsrepo.AdjustmentRepositoryFacade
	documentRepo   portsrepo.DocumentRepositoryFacade
	teamSvc        portssvc.TeamAuthorizerSvc
	lockSvc        portssvc.PeriodLockSvcFacade
}

// NewAdjustmentService creates a new AdjustmentService.
func NewAdjustmentService(adjustmentRepo portsrepo.AdjustmentRepositoryFacade, documentRepo portsrepo.DocumentRepositoryFacade, teamSvc portssvc.TeamAuthorizerSvc, lockSvc portssvc.PeriodLockSvcFacade) portssvc.AdjustmentSvcFacade {
	return &adjustmentService{
		adjustmentRepo: adjustmentRepo,
		documentRepo:   documentRepo,
		teamSvc:        teamSvc,
		lockSvc:        lockSvc,
	}
}

var _ portssvc.AdjustmentSvcFacade = (*adjustmentService)(nil)

// CreateAdjustment applies a signed correction to a document's amount due.
func (s *adjustmentService) CreateAdjustment(ctx context.Context, teamID string, req dto.CreateAdjustmentRequest, actingUserID string) (*domain.Adjustment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, actingUserID, teamID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreateAdjustment", slog.String("user_id", actingUserID), slog.String("team_id", teamID))
		return nil, err
	}

	signedAmount := req.Type.ApplySign(req.Amount)
	if signedAmount.IsZero() {
		return nil, fmt.Errorf("%w: adjustment amount must be non-zero", apperrors.ErrValidation)
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, req.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", req.DocumentID, err)
	}
	if doc.TeamID != teamID {
		return nil, apperrors.ErrNotFound
	}
	if !doc.Kind.BearsBalance() {
		return nil, fmt.Errorf("%w: %s documents carry no balance", apperrors.ErrValidation, doc.Kind)
	}
	if doc.Status == domain.StatusDraft || doc.Status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: document %s is %s", apperrors.ErrInvalidTransition, req.DocumentID, doc.Status)
	}
	if err := s.lockSvc.AssertDateMutable(ctx, teamID, doc.DocumentDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	adjustment := domain.Adjustment{
		AdjustmentID:    uuid.NewString(),
		TeamID:          teamID,
		DocumentID:      req.DocumentID,
		Type:            req.Type,
		SignedAmount:    signedAmount,
		Description:     req.Description,
		AdjustmentDate:  req.AdjustmentDate,
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
		Action:     domain.ActionCreateAdjustment,
		EntityKind: "adjustment",
		EntityID:   adjustment.AdjustmentID,
		Detail:     fmt.Sprintf("%s %s on document %s", adjustment.Type, signedAmount.String(), req.DocumentID),
		CreatedAt:  now,
	}

	if err := s.adjustmentRepo.SaveAdjustment(ctx, adjustment, activity); err != nil {
		logger.Error("Failed to save adjustment", slog.String("error", err.Error()), slog.String("document_id", req.DocumentID))
		return nil, fmt.Errorf("failed to save adjustment: %w", err)
	}

	logger.Info("Adjustment created", slog.String("adjustment_id", adjustment.AdjustmentID), slog.String("type", string(adjustment.Type)), slog.String("document_id", req.DocumentID))
	return &adjustment, nil
}

// DeleteAdjustment removes an adjustment, restoring the document's prior due.
func (s *adjustmentService) DeleteAdjustment(ctx context.Context, teamID string, adjustmentID string, actingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, actingUserID, teamID, domain.RoleMember); err != nil {
		return err
	}

	adjustment, err := s.adjustmentRepo.FindAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return fmt.Errorf("failed to find adjustment %s: %w", adjustmentID, err)
	}
	if adjustment.TeamID != teamID {
		return apperrors.ErrNotFound
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, adjustment.DocumentID)
	if err != nil {
		return fmt.Errorf("failed to find document %s: %w", adjustment.DocumentID, err)
	}
	if err := s.lockSvc.AssertDateMutable(ctx, teamID, doc.DocumentDate); err != nil {
		return err
	}

	activity := domain.Activity{
		ActivityID: uuid.NewString(),
		TeamID:     teamID,
		ActorID:    actingUserID,
		Action:     domain.ActionDeleteAdjustment,
		EntityKind: "adjustment",
		EntityID:   adjustmentID,
		Detail:     fmt.Sprintf("removed %s %s from document %s", adjustment.Type, adjustment.SignedAmount.String(), adjustment.DocumentID),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.adjustmentRepo.DeleteAdjustment(ctx, *adjustment, activity); err != nil {
		logger.Error("Failed to delete adjustment", slog.String("error", err.Error()), slog.String("adjustment_id", adjustmentID))
		return fmt.Errorf("failed to delete adjustment: %w", err)
	}

	logger.Info("Adjustment deleted", slog.String("adjustment_id", adjustmentID), slog.String("document_id", adjustment.DocumentID))
	return nil
}

// ListAdjustmentsByDocument retrieves a document's adjustments.
func (s *adjustmentService) ListAdjustmentsByDocument(ctx context.Context, teamID string, documentID string, requestingUserID string) ([]domain.Adjustment, error) {
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
	adjustments, err := s.adjustmentRepo.ListAdjustmentsByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	return adjustments, nil
}
