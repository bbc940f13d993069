package domain

// TeamRole defines what a member may do within a team.
type TeamRole string

const (
	RoleAdmin    TeamRole = "ADMIN"
	RoleMember   TeamRole = "MEMBER"
	RoleReadOnly TeamRole = "READ_ONLY"
)

// CanPerform checks if the current role satisfies the required role level.
func (r TeamRole) CanPerform(required TeamRole) bool {
	switch required {
	case RoleReadOnly:
		return r == RoleReadOnly || r == RoleMember || r == RoleAdmin
	case RoleMember:
		return r == RoleMember || r == RoleAdmin
	case RoleAdmin:
		return r == RoleAdmin
	default:
		return false
	}
}

// Team is the tenant boundary. Every ledger entity belongs to exactly one team.
type Team struct {
	TeamID              string `json:"teamID"` // Primary Key (UUID)
	Name                string `json:"name"`
	GstNumber           string `json:"gstNumber"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode"`
	IsActive            bool   `json:"isActive"`
	AuditFields
}

// TeamMember links a user to a team with a role.
type TeamMember struct {
	TeamID string   `json:"teamID"`
	UserID string   `json:"userID"`
	Role   TeamRole `json:"role"`
	AuditFields
}
