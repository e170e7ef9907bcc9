package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain/entity"
	"github.com/mhodge11/chatty-backend/internal/platform/email"
	"github.com/mhodge11/chatty-backend/internal/platform/token"
	"github.com/mhodge11/chatty-backend/internal/platform/upload"
)

// AuthRepository abstracts the credential store. Interfaces live with the
// consumer (this package), not the provider (adapters), per Go convention.
type AuthRepository interface {
	// GetByUsername retrieves the record whose stored (normalized) username
	// matches. Returns domain.ErrNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*entity.AuthRecord, error)

	// GetByEmail retrieves the record whose stored (lowercased) email matches.
	GetByEmail(ctx context.Context, email string) (*entity.AuthRecord, error)

	// GetByUsernameOrEmail retrieves the first record matching either value,
	// both compared in stored normalized form.
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*entity.AuthRecord, error)

	// GetByPasswordResetToken retrieves the record holding an unexpired reset
	// token. Expired tokens behave as not found.
	GetByPasswordResetToken(ctx context.Context, resetToken string) (*entity.AuthRecord, error)

	// UpdatePasswordResetToken stores a reset token and its expiry instant
	// (epoch milliseconds) on the record.
	UpdatePasswordResetToken(ctx context.Context, id bson.ObjectID, resetToken string, expiresAt int64) error

	// UpdatePassword sets a new password hash and clears the reset token
	// fields in the same write.
	UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error
}

// UserRepository abstracts the profile store.
type UserRepository interface {
	GetByID(ctx context.Context, id bson.ObjectID) (*entity.UserProfile, error)
	GetByAuthID(ctx context.Context, authID bson.ObjectID) (*entity.UserProfile, error)
}

// UserCache is the read-through cache for freshly created profiles. GetUser
// returns (nil, nil) on a cache miss.
type UserCache interface {
	SaveUser(ctx context.Context, userID, uID string, user *entity.UserProfile) error
	GetUser(ctx context.Context, userID string) (*entity.UserProfile, error)
}

// JobQueue dispatches fire-and-forget background jobs; the caller never
// observes their completion.
type JobQueue interface {
	AddJob(ctx context.Context, name string, payload any) error
}

// Uploader sends a base64-encoded image to external object storage under the
// given public id, cropped and invalidated for immediate serving.
type Uploader interface {
	Upload(ctx context.Context, image, publicID string) (upload.Result, error)
}

// TokenSigner issues the signed session token.
type TokenSigner interface {
	Sign(claims token.Claims) (string, error)
}

// EmailRenderer produces the HTML bodies for the reset emails.
type EmailRenderer interface {
	ForgotPassword(username, resetLink string) (string, error)
	ResetConfirmation(params email.ResetEmailParams) (string, error)
}
