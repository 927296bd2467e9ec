package domain

// Role is the workflow role carried in the auth token. User management lives
// in a separate service; only the role claim matters here.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleAccountant Role = "ACCOUNTANT"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAccountant:
		return true
	}
	return false
}

// CanReview reports whether the role may approve or reject journal entries.
func (r Role) CanReview() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanManageAccounts reports whether the role may mutate the chart of accounts.
func (r Role) CanManageAccounts() bool {
	return r == RoleAdmin
}

// Actor is the authenticated caller extracted from the bearer token.
type Actor struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}
