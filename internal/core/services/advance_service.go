package services

import (
	"context"
	"errors"
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

// advanceService provides advance payments and the allocation engine.
type advanceService struct {
	advanceRepo  portsrepo.AdvanceRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
	teamSvc      portssvc.TeamAuthorizerSvc
	lockSvc      portssvc.PeriodLockSvcFacade
}

// NewAdvanceService creates a new AdvanceService.
func NewAdvanceService(advanceRepo portsrepo.AdvanceRepositoryFacade, documentRepo portsrepo.DocumentRepositoryFacade, teamSvc portssvc.TeamAuthorizerSvc, lockSvc portssvc.PeriodLockSvcFacade) portssvc.AdvanceSvcFacade {
	return &advanceService{
		advanceRepo:  advanceRepo,
		documentRepo: documentRepo,
		teamSvc:      teamSvc,
		lockSvc:      lockSvc,
	}
}

var _ portssvc.AdvanceSvcFacade = (*advanceService)(nil)

// RecordAdvance records a pre-payment with a fully unallocated remainder.
func (s *advanceService) RecordAdvance(ctx context.Context, teamID string, req dto.RecordAdvanceRequest, actingUserID string) (*domain.Advance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, actingUserID, teamID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for RecordAdvance", slog.String("user_id", actingUserID), slog.String("team_id", teamID))
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: advance amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	advance := domain.Advance{
		AdvanceID:         uuid.NewString(),
		TeamID:            teamID,
		CounterpartyID:    req.CounterpartyID,
		Direction:         req.Direction,
		TotalAmount:       req.Amount,
		UnallocatedAmount: req.Amount,
		AdvanceDate:       req.AdvanceDate,
		Notes:             req.Notes,
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
		Action:     domain.ActionRecordAdvance,
		EntityKind: "advance",
		EntityID:   advance.AdvanceID,
		Detail:     fmt.Sprintf("%s advance of %s from counterparty %s", advance.Direction, advance.TotalAmount.String(), advance.CounterpartyID),
		CreatedAt:  now,
	}

	if err := s.advanceRepo.SaveAdvance(ctx, advance, activity); err != nil {
		logger.Error("Failed to save advance", slog.String("error", err.Error()), slog.String("team_id", teamID))
		return nil, fmt.Errorf("failed to save advance: %w", err)
	}

	logger.Info("Advance recorded", slog.String("advance_id", advance.AdvanceID), slog.String("amount", advance.TotalAmount.String()))
	return &advance, nil
}

// GetAdvanceByID retrieves an advance the requester's team owns.
func (s *advanceService) GetAdvanceByID(ctx context.Context, teamID string, advanceID string, requestingUserID string) (*domain.Advance, error) {
	if err := s.teamSvc.AuthorizeTeamAction(ctx, requestingUserID, teamID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	advance, err := s.findTeamAdvance(ctx, teamID, advanceID)
	if err != nil {
		return nil, err
	}
	return advance, nil
}

// ListAdvances retrieves a team's advances newest first.
func (s *advanceService) ListAdvances(ctx context.Context, teamID string, requestingUserID string, limit int, nextToken *string) ([]domain.Advance, *string, error) {
	if err := s.teamSvc.AuthorizeTeamAction(ctx, requestingUserID, teamID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	advances, token, err := s.advanceRepo.ListAdvancesByTeam(ctx, teamID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list advances: %w", err)
	}
	return advances, token, nil
}

func (s *advanceService) findTeamAdvance(ctx context.Context, teamID, advanceID string) (*domain.Advance, error) {
	advance, err := s.advanceRepo.FindAdvanceByID(ctx, advanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find advance %s: %w", advanceID, err)
	}
	if advance.TeamID != teamID {
		return nil, apperrors.ErrNotFound
	}
	return advance, nil
}

// AllocateAdvance distributes part of an advance's remainder across target
// documents. The whole batch is pre-validated here, then re-checked and
// applied under row locks in the repository; either every slice lands or
// none does.
func (s *advanceService) AllocateAdvance(ctx context.Context, teamID string, advanceID string, req dto.AllocateAdvanceRequest, actingUserID string) ([]domain.Allocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, actingUserID, teamID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for AllocateAdvance", slog.String("user_id", actingUserID), slog.String("team_id", teamID))
		return nil, err
	}

	advance, err := s.findTeamAdvance(ctx, teamID, advanceID)
	if err != nil {
		return nil, err
	}

	requested := decimal.Zero
	seen := make(map[string]bool, len(req.Targets))
	for i, target := range req.Targets {
		if target.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: allocation amount for target %d must be positive", apperrors.ErrValidation, i)
		}
		if seen[target.DocumentID] {
			return nil, fmt.Errorf("%w: document %s appears twice in the allocation batch", apperrors.ErrValidation, target.DocumentID)
		}
		seen[target.DocumentID] = true
		requested = requested.Add(target.Amount)
	}
	if requested.GreaterThan(advance.UnallocatedAmount) {
		return nil, fmt.Errorf("%w: requested %s exceeds unallocated remainder %s",
			apperrors.ErrOverAllocation, requested.String(), advance.UnallocatedAmount.String())
	}

	now := time.Now().UTC()
	allocations := make([]domain.Allocation, len(req.Targets))
	for i, target := range req.Targets {
		doc, err := s.documentRepo.FindDocumentByID(ctx, target.DocumentID)
		if err != nil {
			return nil, fmt.Errorf("failed to find target document %s: %w", target.DocumentID, err)
		}
		if doc.TeamID != teamID {
			return nil, apperrors.ErrNotFound
		}
		if doc.Kind != advance.Direction.TargetKind() {
			return nil, fmt.Errorf("%w: %s advances allocate to %s documents, not %s",
				apperrors.ErrValidation, advance.Direction, advance.Direction.TargetKind(), doc.Kind)
		}
		if doc.CounterpartyID != advance.CounterpartyID {
			return nil, fmt.Errorf("%w: document %s belongs to a different counterparty", apperrors.ErrValidation, doc.DocumentID)
		}
		if doc.Status != domain.StatusIssued {
			return nil, fmt.Errorf("%w: document %s is %s", apperrors.ErrInvalidTransition, doc.DocumentID, doc.Status)
		}
		if err := s.lockSvc.AssertDateMutable(ctx, teamID, doc.DocumentDate); err != nil {
			return nil, err
		}
		if target.Amount.GreaterThan(doc.AmountDue) {
			return nil, fmt.Errorf("%w: slice %s exceeds amount due %s on document %s",
				apperrors.ErrOverAllocation, target.Amount.String(), doc.AmountDue.String(), doc.DocumentID)
		}

		allocations[i] = domain.Allocation{
			AllocationID: uuid.NewString(),
			AdvanceID:    advanceID,
			DocumentID:   target.DocumentID,
			Amount:       target.Amount,
			AllocatedAt:  now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actingUserID,
			},
		}
	}

	activity := domain.Activity{
		ActivityID: uuid.NewString(),
		TeamID:     teamID,
		ActorID:    actingUserID,
		Action:     domain.ActionAllocateAdvance,
		EntityKind: "advance",
		EntityID:   advanceID,
		Detail:     fmt.Sprintf("allocated %s across %d document(s)", requested.String(), len(allocations)),
		CreatedAt:  now,
	}

	if err := s.advanceRepo.SaveAllocations(ctx, advanceID, allocations, activity); err != nil {
		if errors.Is(err, apperrors.ErrOverAllocation) {
			// A concurrent allocation won the remainder between the pre-check
			// and the row lock.
			logger.Warn("Allocation lost remainder race", slog.String("advance_id", advanceID))
			return nil, err
		}
		logger.Error("Failed to save allocations", slog.String("error", err.Error()), slog.String("advance_id", advanceID))
		return nil, fmt.Errorf("failed to save allocations: %w", err)
	}

	logger.Info("Advance allocated", slog.String("advance_id", advanceID), slog.String("amount", requested.String()), slog.Int("targets", len(allocations)))
	return allocations, nil
}

// ReverseAllocation removes one allocation, restoring the advance remainder
// and the target document's due. Targets inside a filed period require an
// explicit override, which is recorded in the audit trail.
func (s *advanceService) ReverseAllocation(ctx context.Context, teamID string, allocationID string, overrideLock bool, actingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, actingUserID, teamID, domain.RoleMember); err != nil {
		return err
	}

	allocation, err := s.advanceRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return fmt.Errorf("failed to find allocation %s: %w", allocationID, err)
	}
	advance, err := s.findTeamAdvance(ctx, teamID, allocation.AdvanceID)
	if err != nil {
		return err
	}

	doc, err := s.documentRepo.FindDocumentByID(ctx, allocation.DocumentID)
	if err != nil {
		return fmt.Errorf("failed to find document %s: %w", allocation.DocumentID, err)
	}
	detail := fmt.Sprintf("reversed %s from document %s back to advance %s", allocation.Amount.String(), doc.DocumentID, advance.AdvanceID)
	if err := s.lockSvc.AssertDateMutable(ctx, teamID, doc.DocumentDate); err != nil {
		if !errors.Is(err, apperrors.ErrLockedPeriod) || !overrideLock {
			return err
		}
		// Override only requires admin; the audit trail keeps the evidence.
		if err := s.teamSvc.AuthorizeTeamAction(ctx, actingUserID, teamID, domain.RoleAdmin); err != nil {
			return err
		}
		detail += " (locked period override)"
	}

	activity := domain.Activity{
		ActivityID: uuid.NewString(),
		TeamID:     teamID,
		ActorID:    actingUserID,
		Action:     domain.ActionReverseAllocation,
		EntityKind: "allocation",
		EntityID:   allocationID,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.advanceRepo.DeleteAllocation(ctx, *allocation, activity); err != nil {
		logger.Error("Failed to reverse allocation", slog.String("error", err.Error()), slog.String("allocation_id", allocationID))
		return fmt.Errorf("failed to reverse allocation: %w", err)
	}

	logger.Info("Allocation reversed", slog.String("allocation_id", allocationID), slog.String("advance_id", advance.AdvanceID))
	return nil
}

// DeleteAdvance removes an advance with no remaining allocations.
func (s *advanceService) DeleteAdvance(ctx context.Context, teamID string, advanceID string, actingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.teamSvc.AuthorizeTeamAction(ctx, actingUserID, teamID, domain.RoleMember); err != nil {
		return err
	}

	advance, err := s.findTeamAdvance(ctx, teamID, advanceID)
	if err != nil {
		return err
	}
	if !advance.UnallocatedAmount.Equal(advance.TotalAmount) {
		return fmt.Errorf("%w: advance %s still has active allocations; reverse them first", apperrors.ErrValidation, advanceID)
	}

	activity := domain.Activity{
		ActivityID: uuid.NewString(),
		TeamID:     teamID,
		ActorID:    actingUserID,
		Action:     domain.ActionDeleteAdvance,
		EntityKind: "advance",
		EntityID:   advanceID,
		Detail:     fmt.Sprintf("removed %s advance of %s", advance.Direction, advance.TotalAmount.String()),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.advanceRepo.DeleteAdvance(ctx, *advance, activity); err != nil {
		logger.Error("Failed to delete advance", slog.String("error", err.Error()), slog.String("advance_id", advanceID))
		return fmt.Errorf("failed to delete advance: %w", err)
	}

	logger.Info("Advance deleted", slog.String("advance_id", advanceID))
	return nil
}

// ListAllocationsByAdvance retrieves an advance's allocations.
func (s *advanceService) ListAllocationsByAdvance(ctx context.Context, teamID string, advanceID string, requestingUserID string) ([]domain.Allocation, error) {
	if err := s.teamSvc.AuthorizeTeamAction(ctx, requestingUserID, teamID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.findTeamAdvance(ctx, teamID, advanceID); err != nil {
		return nil, err
	}
	allocations, err := s.advanceRepo.ListAllocationsByAdvance(ctx, advanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	return allocations, nil
}
