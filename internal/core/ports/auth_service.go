package ports

import (
	"context"

	"github.com/99minutos/identity-service/internal/core/domain"
)

// RegisterInput carries a validated registration payload.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	RoleID    int64
}

// TokenPair is the credential set returned by a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Resolve loads the user behind an authenticated request, role attached.
	// Fails with domain.ErrUserNotFound or domain.ErrUserDisabled.
	Resolve(ctx context.Context, userID int64) (*domain.User, error)
}
