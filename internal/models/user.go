package models

// UserProfile holds the identity fields of a logged-in user. Profiles are
// replaced wholesale on every fetch, never merged field by field.
type UserProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Streak is server-owned; the client treats it as a read-mostly cache.
type Streak struct {
	Current     int    `json:"current"`
	Best        int    `json:"best"`
	LastUpdated string `json:"lastUpdated"`
}

// Badge is an immutable catalog entry.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Role is the cached access role used for feature gating.
type Role string

const (
	RoleGuest    Role = "guest"
	RoleFreeUser Role = "free_user"
	RolePaidUser Role = "paid_user"
)
