// Package adapters implements the auth feature's repository interfaces
// against MongoDB.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain/entity"
)

// AuthMongo persists AuthRecords in the Auth collection.
type AuthMongo struct {
	coll *mongo.Collection
}

// NewAuthMongo creates an AuthMongo over the given database.
func NewAuthMongo(db *mongo.Database) *AuthMongo {
	return &AuthMongo{coll: db.Collection("Auth")}
}

// EnsureIndexes creates the unique username/email indexes. The request-path
// uniqueness pre-check stays best effort; these indexes are the backstop
// that keeps a lost race from persisting a duplicate.
func (r *AuthMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create auth indexes: %w", err)
	}
	return nil
}

func (r *AuthMongo) findOne(ctx context.Context, filter bson.M) (*entity.AuthRecord, error) {
	record := &entity.AuthRecord{}
	err := r.coll.FindOne(ctx, filter).Decode(record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find auth record: %w", err)
	}
	return record, nil
}

// GetByUsername looks up a record by stored (normalized) username.
func (r *AuthMongo) GetByUsername(ctx context.Context, username string) (*entity.AuthRecord, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// GetByEmail looks up a record by stored (lowercased) email.
func (r *AuthMongo) GetByEmail(ctx context.Context, email string) (*entity.AuthRecord, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByUsernameOrEmail returns the first record matching either value.
func (r *AuthMongo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*entity.AuthRecord, error) {
	return r.findOne(ctx, bson.M{"$or": []bson.M{
		{"username": username},
		{"email": email},
	}})
}

// GetByPasswordResetToken returns the record holding an unexpired token.
// Expired tokens behave as not found.
func (r *AuthMongo) GetByPasswordResetToken(ctx context.Context, resetToken string) (*entity.AuthRecord, error) {
	return r.findOne(ctx, bson.M{
		"passwordResetToken":   resetToken,
		"passwordResetExpires": bson.M{"$gt": time.Now().UnixMilli()},
	})
}

// Create inserts a new record, translating unique-index conflicts.
func (r *AuthMongo) Create(ctx context.Context, record *entity.AuthRecord) error {
	_, err := r.coll.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("failed to insert auth record: %w", err)
	}
	return nil
}

// UpdatePasswordResetToken stores a reset token and its epoch-millisecond
// expiry on the record.
func (r *AuthMongo) UpdatePasswordResetToken(ctx context.Context, id bson.ObjectID, resetToken string, expiresAt int64) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"passwordResetToken":   resetToken,
		"passwordResetExpires": expiresAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to update reset token: %w", err)
	}
	return nil
}

// UpdatePassword sets a new hash and clears the reset token fields in the
// same write, making the token single-use.
func (r *AuthMongo) UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$set":   bson.M{"password": passwordHash},
		"$unset": bson.M{"passwordResetToken": "", "passwordResetExpires": ""},
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
