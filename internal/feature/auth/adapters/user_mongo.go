package adapters

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain/entity"
)

// UserMongo persists UserProfiles in the User collection.
type UserMongo struct {
	coll *mongo.Collection
}

// NewUserMongo creates a UserMongo over the given database.
func NewUserMongo(db *mongo.Database) *UserMongo {
	return &UserMongo{coll: db.Collection("User")}
}

func (r *UserMongo) findOne(ctx context.Context, filter bson.M) (*entity.UserProfile, error) {
	user := &entity.UserProfile{}
	err := r.coll.FindOne(ctx, filter).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user profile: %w", err)
	}
	return user, nil
}

// GetByID looks up a profile by its id.
func (r *UserMongo) GetByID(ctx context.Context, id bson.ObjectID) (*entity.UserProfile, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByAuthID looks up the profile backing an AuthRecord.
func (r *UserMongo) GetByAuthID(ctx context.Context, authID bson.ObjectID) (*entity.UserProfile, error) {
	return r.findOne(ctx, bson.M{"authId": authID})
}

// Create inserts a new profile.
func (r *UserMongo) Create(ctx context.Context, user *entity.UserProfile) error {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to insert user profile: %w", err)
	}
	return nil
}
