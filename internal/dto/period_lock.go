package dto

import (
	"time"

	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
)

// FileGstPeriodRequest files a GST return, freezing documents dated inside
// the period.
type FileGstPeriodRequest struct {
	PeriodStart time.Time `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time `json:"periodEnd" binding:"required"`
}

// PeriodLockResponse is the returned form of a filed period lock.
type PeriodLockResponse struct {
	PeriodLockID string    `json:"periodLockID"`
	PeriodStart  time.Time `json:"periodStart"`
	PeriodEnd    time.Time `json:"periodEnd"`
	FiledAt      time.Time `json:"filedAt"`
	FiledBy      string    `json:"filedBy"`
}

// ToPeriodLockResponse converts a domain.GstPeriodLock to its DTO.
func ToPeriodLockResponse(l *domain.GstPeriodLock) PeriodLockResponse {
	return PeriodLockResponse{
		PeriodLockID: l.PeriodLockID,
		PeriodStart:  l.PeriodStart,
		PeriodEnd:    l.PeriodEnd,
		FiledAt:      l.FiledAt,
		FiledBy:      l.FiledBy,
	}
}

// ToPeriodLockResponses converts a slice of period locks to DTOs.
func ToPeriodLockResponses(ls []domain.GstPeriodLock) []PeriodLockResponse {
	responses := make([]PeriodLockResponse, len(ls))
	for i, l := range ls {
		responses[i] = ToPeriodLockResponse(&l)
	}
	return responses
}
