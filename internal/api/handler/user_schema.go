package handler

import "time"

type updateUserRequest struct {
	Username  *string `json:"username"   validate:"omitempty,min=3,max=80"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Password  *string `json:"password"   validate:"omitempty,min=6"`
	FirstName *string `json:"first_name" validate:"omitempty,max=80"`
	LastName  *string `json:"last_name"  validate:"omitempty,max=80"`
	RoleID    *int64  `json:"role_id"    validate:"omitempty,gt=0"`
}

// Response-only types owned by the transport layer, kept separate from the
// domain so the JSON contract is not coupled to internal changes. The
// password hash has no field here at all.

type roleResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type userResponse struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Role      *roleResponse `json:"role,omitempty"`
}
