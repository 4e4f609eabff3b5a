package service

import (
	"context"
	"sort"

	"github.com/99minutos/identity-service/internal/core/domain"
)

// stubUserRepo is an in-memory UserRepository mirroring the storage-level
// uniqueness guarantees of the Mongo implementation.
type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	created := cloneUser(user)
	created.ID = r.nextID
	r.nextID++
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// stubRoleRepo serves the seeded role set.
type stubRoleRepo struct {
	roles []*domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: []*domain.Role{
		{ID: 1, Name: domain.RoleAdmin, Description: "Administrator with full access"},
		{ID: 2, Name: domain.RoleUser, Description: "Regular user with limited access"},
	}}
}

func (r *stubRoleRepo) FindByID(_ context.Context, id int64) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.ID == id {
			return role, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) List(_ context.Context) ([]*domain.Role, error) {
	return r.roles, nil
}

func (r *stubRoleRepo) Seed(_ context.Context) error { return nil }

// stubCache records cache traffic so tests can assert invalidation.
type stubCache struct {
	entries      map[int64]*domain.User
	invalidated  []int64
	failingReads bool
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[int64]*domain.User)}
}

func (c *stubCache) Get(_ context.Context, id int64) (*domain.User, error) {
	if c.failingReads {
		return nil, context.DeadlineExceeded
	}
	return cloneUser(c.entries[id]), nil
}

func (c *stubCache) Set(_ context.Context, user *domain.User) error {
	c.entries[user.ID] = cloneUser(user)
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, id int64) error {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}
