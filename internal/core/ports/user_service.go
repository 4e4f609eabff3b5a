package ports

import (
	"context"

	"github.com/99minutos/identity-service/internal/core/domain"
)

// UpdateUserInput carries a partial update: nil fields are left untouched.
// AsAdmin reports whether the caller holds the admin role; RoleID is only
// applied when it does.
type UpdateUserInput struct {
	ID        int64
	Username  *string
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	RoleID    *int64
	AsAdmin   bool
}

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
