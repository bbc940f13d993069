package dto

import (
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// ActivityResponse is the returned form of an activity log entry.
type ActivityResponse struct {
	ActivityID string                `json:"activityID"`
	ActorID    string                `json:"actorID"`
	Action     domain.ActivityAction `json:"action"`
	EntityKind string                `json:"entityKind"`
	EntityID   string                `json:"entityID"`
	Detail     string                `json:"detail"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// ListActivitiesResponse wraps a page of activity entries with a
// continuation token.
type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
	NextToken  *string            `json:"nextToken,omitempty"`
}

// ToActivityResponse converts a domain.Activity to ActivityResponse DTO.
func ToActivityResponse(a *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ActivityID: a.ActivityID,
		ActorID:    a.ActorID,
		Action:     a.Action,
		EntityKind: a.EntityKind,
		EntityID:   a.EntityID,
		Detail:     a.Detail,
		CreatedAt:  a.CreatedAt,
	}
}

// ToActivityResponses converts a slice of domain.Activity to DTOs.
func ToActivityResponses(as []domain.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, len(as))
	for i, a := range as {
		responses[i] = ToActivityResponse(&a)
	}
	return responses
}
