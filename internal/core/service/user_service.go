package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/identity-service/internal/core/domain"
	"github.com/99minutos/identity-service/internal/core/ports"
)

// UserService implements the user CRUD operations exposed under /api/users.
// Authorization decisions are made upstream; the one exception is the
// admin-only role_id change, which needs the caller's role and is handled
// here via UpdateUserInput.AsAdmin.
type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	cache ports.UserCache
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, cache ports.UserCache, log zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, cache: cache, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachRoles(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

// Update applies a partial update: only non-nil fields change. Username and
// email changes are duplicate-checked against other users; a password change
// is re-hashed; role_id is applied only for admin callers and silently
// ignored otherwise.
func (s *UserService) Update(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if _, err := s.users.FindByUsername(ctx, *in.Username); err == nil {
			return nil, domain.ErrUsernameTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Username = *in.Username
	}

	if in.Email != nil && *in.Email != user.Email {
		if _, err := s.users.FindByEmail(ctx, *in.Email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = *in.Email
	}

	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}

	if in.RoleID != nil && in.AsAdmin {
		role, err := s.roles.FindByID(ctx, *in.RoleID)
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidate(ctx, user.ID)

	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.log.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Int64("user_id", id).Msg("user cache invalidation failed")
	}
}

// attachRoles resolves the role set once and joins it onto each user.
func (s *UserService) attachRoles(ctx context.Context, users []*domain.User) error {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return err
	}
	byID := make(map[int64]*domain.Role, len(roles))
	for _, r := range roles {
		byID[r.ID] = r
	}
	for _, u := range users {
		u.Role = byID[u.RoleID]
	}
	return nil
}
