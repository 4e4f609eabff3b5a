package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models an identity record managed by the service.
type User struct {
	ID           int64     `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	FirstName    string    `json:"first_name" bson:"first_name"`
	LastName     string    `json:"last_name" bson:"last_name"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	RoleID       int64     `json:"role_id" bson:"role_id"`
	Role         *Role     `json:"role,omitempty" bson:"-"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role != nil && u.Role.Name == RoleAdmin
}

// CanAccessUser reports whether the user may read or modify the record
// identified by targetID: owners may access their own record, admins any.
func (u *User) CanAccessUser(targetID int64) bool {
	return u.ID == targetID || u.IsAdmin()
}

// Role is an authorization tier. The set is seeded at bootstrap and never
// mutated through the API.
type Role struct {
	ID          int64  `json:"id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
}
