package ports

import (
	"context"

	"github.com/99minutos/identity-service/internal/core/domain"
)

// UserRepository defines the persistence contract for user records. Create
// and Update must enforce username/email uniqueness at the storage layer and
// surface violations as domain.ErrUsernameTaken / domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.User, error)
}

// RoleRepository persists the small static role set.
type RoleRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	// Seed idempotently creates the bootstrap roles (admin, user).
	Seed(ctx context.Context) error
}

// UserCache is a read-through cache for user records, consulted on every
// authenticated request. Implementations must treat it as best-effort.
type UserCache interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id int64) error
}
