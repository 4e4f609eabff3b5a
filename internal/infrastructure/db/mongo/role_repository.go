package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/identity-service/internal/core/domain"
)

const collectionRoles = "roles"

// RoleRepository persists the role set. Roles are written once at bootstrap
// via Seed and only read afterwards.
type RoleRepository struct {
	col *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(collectionRoles)}
}

func (r *RoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *RoleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var role domain.Role
	if err := r.col.FindOne(ctx, filter).Decode(&role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cur.Close(ctx)

	var roles []*domain.Role
	if err := cur.All(ctx, &roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return roles, nil
}

// Seed upserts the bootstrap roles. Running it repeatedly leaves the
// collection unchanged.
func (r *RoleRepository) Seed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	seed := []domain.Role{
		{ID: 1, Name: domain.RoleAdmin, Description: "Administrator with full access"},
		{ID: 2, Name: domain.RoleUser, Description: "Regular user with limited access"},
	}
	for _, role := range seed {
		_, err := r.col.UpdateOne(ctx,
			bson.M{"_id": role.ID},
			bson.M{"$setOnInsert": role},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed role %q: %w", role.Name, err)
		}
	}
	return nil
}
