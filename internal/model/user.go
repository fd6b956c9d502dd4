package model

import "time"

// Roles a user account can carry. The set is closed; the schema enforces it.
const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
)

// User is an account holding references to the papers it uploaded or was
// assigned. Files is the ordered reference list; a paper ID appears here only
// if the corresponding paper names this user as uploader or assignee.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Files        []string  `json:"files"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleMentor
}
