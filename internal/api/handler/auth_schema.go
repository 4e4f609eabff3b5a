package handler

// messageResponse is the envelope used for single-message errors and notices.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Username  string `json:"username"   validate:"required,min=3,max=80"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"omitempty,max=80"`
	LastName  string `json:"last_name"  validate:"omitempty,max=80"`
	RoleID    int64  `json:"role_id"    validate:"required,gt=0"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}
