package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/middleware"
)

// reportingService provides derived read models over the ledger.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	teamSvc       portssvc.TeamAuthorizerSvc
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, teamSvc portssvc.TeamAuthorizerSvc) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		teamSvc:       teamSvc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetOutstandingSummary aggregates open receivables, payables and unallocated
// advances for a team.
func (s *reportingService) GetOutstandingSummary(ctx context.Context, teamID string, requestingUserID string) (*domain.OutstandingSummary, error) {
	if err := s.teamSvc.AuthorizeTeamAction(ctx, requestingUserID, teamID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	summary, err := s.reportingRepo.GetOutstandingSummary(ctx, teamID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to build outstanding summary", slog.String("error", err.Error()), slog.String("team_id", teamID))
		return nil, fmt.Errorf("failed to build outstanding summary: %w", err)
	}
	return summary, nil
}
