package models

// Team is the persisted tenant record.
type Team struct {
	TeamID              string `db:"team_id"`
	Name                string `db:"name"`
	GstNumber           string `db:"gst_number"`
	DefaultCurrencyCode string `db:"default_currency_code"`
	IsActive            bool   `db:"is_active"`
	AuditFields
}

// TeamMember links a user to a team with a role.
type TeamMember struct {
	TeamID string `db:"team_id"`
	UserID string `db:"user_id"`
	Role   string `db:"role"`
	AuditFields
}
