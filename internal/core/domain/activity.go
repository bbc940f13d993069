package domain

import "time"

// ActivityAction names an auditable mutation.
type ActivityAction string

const (
	ActionRecordPayment     ActivityAction = "RECORD_PAYMENT"
	ActionDeletePayment     ActivityAction = "DELETE_PAYMENT"
	ActionCreateAdjustment  ActivityAction = "CREATE_ADJUSTMENT"
	ActionDeleteAdjustment  ActivityAction = "DELETE_ADJUSTMENT"
	ActionRecordAdvance     ActivityAction = "RECORD_ADVANCE"
	ActionAllocateAdvance   ActivityAction = "ALLOCATE_ADVANCE"
	ActionReverseAllocation ActivityAction = "REVERSE_ALLOCATION"
	ActionDeleteAdvance     ActivityAction = "DELETE_ADVANCE"
	ActionFileGstPeriod     ActivityAction = "FILE_GST_PERIOD"
	ActionStatusChange      ActivityAction = "STATUS_CHANGE"
)

// Activity is an immutable audit record of a ledger mutation, required for
// GST compliance. Rows are only ever inserted.
type Activity struct {
	ActivityID string         `json:"activityID"` // Primary Key (UUID)
	TeamID     string         `json:"teamID"`
	ActorID    string         `json:"actorID"`
	Action     ActivityAction `json:"action"`
	EntityKind string         `json:"entityKind"` // e.g. "document", "advance"
	EntityID   string         `json:"entityID"`
	Detail     string         `json:"detail"`
	CreatedAt  time.Time      `json:"createdAt"`
}
