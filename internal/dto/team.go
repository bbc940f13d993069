package dto

import (
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// CreateTeamRequest creates a new tenant. The creator becomes its admin.
type CreateTeamRequest struct {
	Name                string `json:"name" binding:"required"`
	GstNumber           string `json:"gstNumber"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"required,uppercase,len=3"`
}

// AddTeamMemberRequest adds a user to a team with a role.
type AddTeamMemberRequest struct {
	UserID string          `json:"userID" binding:"required"`
	Role   domain.TeamRole `json:"role" binding:"required,oneof=ADMIN MEMBER READ_ONLY"`
}

// TeamResponse is the returned form of a team.
type TeamResponse struct {
	TeamID              string    `json:"teamID"`
	Name                string    `json:"name"`
	GstNumber           string    `json:"gstNumber"`
	DefaultCurrencyCode string    `json:"defaultCurrencyCode"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ListTeamsResponse wraps the teams the requesting user belongs to.
type ListTeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

// ToTeamResponse converts a domain.Team to TeamResponse DTO.
func ToTeamResponse(t *domain.Team) TeamResponse {
	return TeamResponse{
		TeamID:              t.TeamID,
		Name:                t.Name,
		GstNumber:           t.GstNumber,
		DefaultCurrencyCode: t.DefaultCurrencyCode,
		IsActive:            t.IsActive,
		CreatedAt:           t.CreatedAt,
	}
}

// ToTeamResponses converts a slice of domain.Team to DTOs.
func ToTeamResponses(ts []domain.Team) []TeamResponse {
	responses := make([]TeamResponse, len(ts))
	for i, t := range ts {
		responses[i] = ToTeamResponse(&t)
	}
	return responses
}
