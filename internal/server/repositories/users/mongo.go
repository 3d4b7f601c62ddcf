// Package users provides a MongoDB-backed repository for user accounts and
// their single-slot refresh tokens.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dmitrijs2005/videotube/internal/common"
	"github.com/dmitrijs2005/videotube/internal/server/models"
)

const collectionName = "users"

// MongoRepository implements Repository over a users collection.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository constructs a repository bound to the given database.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

// Create inserts a new user document. Unique-index violations on username
// or email are reported as common.ErrAlreadyExists.
func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// GetByID returns the user with the given id, or common.ErrNotFound.
func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// FindByUsernameOrEmail returns the first user matching either identifier.
// Empty identifiers are left out of the query.
func (r *MongoRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	or := make([]bson.M, 0, 2)
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return nil, common.ErrNotFound
	}

	user := &models.User{}
	err := r.coll.FindOne(ctx, bson.M{"$or": or}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// SetRefreshToken overwrites the stored refresh token for the user. Only this
// field (and the update timestamp) is touched; no other validation runs.
func (r *MongoRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"refresh_token": token, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ClearRefreshToken removes the stored refresh token (logout).
func (r *MongoRepository) ClearRefreshToken(ctx context.Context, id string) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$unset": bson.M{"refresh_token": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// RotateRefreshToken replaces the stored refresh token only if it still
// equals current. A lost race (another rotation or a logout in between)
// matches no document and returns common.ErrNotFound.
func (r *MongoRepository) RotateRefreshToken(ctx context.Context, id, current, next string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "refresh_token": current},
		bson.M{"$set": bson.M{"refresh_token": next, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
