package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/identity-service/internal/core/domain"
)

const defaultCacheTTL = 30 * time.Second

// UserCache caches resolved user records (role included) so the auth
// middleware does not hit Mongo on every request. Entries expire quickly and
// are invalidated on update/delete, keeping deactivation near-immediate.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UserCache{client: client, ttl: ttl}
}

// Get returns the cached user, or (nil, nil) on a cache miss.
func (c *UserCache) Get(ctx context.Context, id int64) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("user cache get: %w", err)
	}

	var user cachedUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("user cache decode: %w", err)
	}
	return user.toDomain(), nil
}

// Set stores the user under its id key with the configured TTL.
func (c *UserCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(fromDomain(user))
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached entry for the given user id.
func (c *UserCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *UserCache) key(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// cachedUser is the cache wire format. The password hash is carried so a
// cached record behaves identically to a stored one; it never leaves Redis.
type cachedUser struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"password_hash"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	IsActive     bool         `json:"is_active"`
	RoleID       int64        `json:"role_id"`
	Role         *domain.Role `json:"role,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func fromDomain(u *domain.User) cachedUser {
	return cachedUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsActive:     u.IsActive,
		RoleID:       u.RoleID,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (cu cachedUser) toDomain() *domain.User {
	return &domain.User{
		ID:           cu.ID,
		Username:     cu.Username,
		Email:        cu.Email,
		PasswordHash: cu.PasswordHash,
		FirstName:    cu.FirstName,
		LastName:     cu.LastName,
		IsActive:     cu.IsActive,
		RoleID:       cu.RoleID,
		Role:         cu.Role,
		CreatedAt:    cu.CreatedAt,
		UpdatedAt:    cu.UpdatedAt,
	}
}
