package services

import (
	"context"
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User       UserSvcFacade
	Team       TeamSvcFacade
	Document   DocumentSvcFacade
	Payment    PaymentSvcFacade
	Adjustment AdjustmentSvcFacade
	Advance    AdvanceSvcFacade
	PeriodLock PeriodLockSvcFacade
	Activity   ActivitySvcFacade
	Reporting  ReportingSvcFacade
	Token      TokenSvcFacade
}

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// TeamAuthorizerSvc is the slice of TeamSvcFacade the other services depend
// on for membership checks.
type TeamAuthorizerSvc interface {
	AuthorizeTeamAction(ctx context.Context, userID string, teamID string, requiredRole domain.TeamRole) error
}
