package domain

// User is an authenticated actor. Identity is consumed by the core only as an
// explicit actor ID on mutations.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // bcrypt; never serialized
	IsActive     bool   `json:"isActive"`
	AuditFields
}
