package services

import (
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/drukbooks/gst_ledger_app/internal/core/ports/services"
	"github.com/drukbooks/gst_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Team service first since every other service authorizes through it.
	container.Team = NewTeamService(repos.TeamRepo, repos.UserRepo)
	authorizer := container.Team.(portssvc.TeamAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	container.PeriodLock = NewPeriodLockService(repos.PeriodLockRepo, authorizer)
	container.Document = NewDocumentService(repos.DocumentRepo, authorizer, container.PeriodLock)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.DocumentRepo, authorizer, container.PeriodLock)
	container.Adjustment = NewAdjustmentService(repos.AdjustmentRepo, repos.DocumentRepo, authorizer, container.PeriodLock)
	container.Advance = NewAdvanceService(repos.AdvanceRepo, repos.DocumentRepo, authorizer, container.PeriodLock)
	container.Activity = NewActivityService(repos.ActivityRepo, authorizer)
	container.Reporting = NewReportingService(repos.ReportingRepo, authorizer)

	return container
}
