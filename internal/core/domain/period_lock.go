package domain

import "time"

// GstPeriodLock freezes balance changes for all documents dated within a filed
// GST return period. Locks are non-overlapping per team and never removed.
type GstPeriodLock struct {
	PeriodLockID string    `json:"periodLockID"` // Primary Key (UUID)
	TeamID       string    `json:"teamID"`
	PeriodStart  time.Time `json:"periodStart"`
	PeriodEnd    time.Time `json:"periodEnd"` // Inclusive
	FiledAt      time.Time `json:"filedAt"`
	FiledBy      string    `json:"filedBy"` // UserID Reference
}

// Covers reports whether a document date falls inside the locked period.
func (l *GstPeriodLock) Covers(date time.Time) bool {
	return !date.Before(l.PeriodStart) && !date.After(l.PeriodEnd)
}

// Overlaps reports whether [start, end] intersects the locked period.
func (l *GstPeriodLock) Overlaps(start, end time.Time) bool {
	return !start.After(l.PeriodEnd) && !end.Before(l.PeriodStart)
}
