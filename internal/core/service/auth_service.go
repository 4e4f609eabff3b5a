package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/identity-service/internal/core/domain"
	"github.com/99minutos/identity-service/internal/core/ports"
	"github.com/99minutos/identity-service/internal/core/token"
)

// AuthService implements registration, login, refresh exchange, and the
// per-request identity resolution used by the auth middleware.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	cache  ports.UserCache
	tokens *token.Manager
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, cache ports.UserCache, tokens *token.Manager, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, cache: cache, tokens: tokens, log: log}
}

// Register hashes the password and persists a new active user. Uniqueness is
// pre-checked here, but the repository's unique constraints are the source of
// truth: a concurrent registration losing the race still surfaces as
// ErrUsernameTaken / ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role, err := s.roles.FindByID(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     true,
		RoleID:       role.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	created.Role = role

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues an access/refresh token pair.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserDisabled
	}

	access, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh verifies a refresh token and issues a fresh access token for its
// subject, provided the account still exists and is active.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.Verify(refreshToken, token.TypeRefresh)
	if err != nil {
		return "", err
	}
	if _, err := s.Resolve(ctx, userID); err != nil {
		return "", err
	}
	return s.tokens.IssueAccess(userID)
}

// Resolve loads the user for an authenticated request, consulting the cache
// first. Cache failures are logged and ignored: Mongo remains authoritative.
func (s *AuthService) Resolve(ctx context.Context, userID int64) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Int64("user_id", userID).Msg("user cache read failed")
		} else if cached != nil {
			if !cached.IsActive {
				return nil, domain.ErrUserDisabled
			}
			return cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	user.Role = role

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Warn().Err(err).Int64("user_id", userID).Msg("user cache write failed")
		}
	}

	if !user.IsActive {
		return nil, domain.ErrUserDisabled
	}
	return user, nil
}
