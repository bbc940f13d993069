package models

import "time"

// GstPeriodLock is the persisted regulatory freeze for a filed GST period.
type GstPeriodLock struct {
	PeriodLockID string    `db:"period_lock_id"`
	TeamID       string    `db:"team_id"`
	PeriodStart  time.Time `db:"period_start"`
	PeriodEnd    time.Time `db:"period_end"`
	FiledAt      time.Time `db:"filed_at"`
	FiledBy      string    `db:"filed_by"`
}
