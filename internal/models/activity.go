package models

import "time"

// Activity is the persisted audit record. Insert-only.
type Activity struct {
	ActivityID string    `db:"activity_id"`
	TeamID     string    `db:"team_id"`
	ActorID    string    `db:"actor_id"`
	Action     string    `db:"action"`
	EntityKind string    `db:"entity_kind"`
	EntityID   string    `db:"entity_id"`
	Detail     string    `db:"detail"`
	CreatedAt  time.Time `db:"created_at"`
}
