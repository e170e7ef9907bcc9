// Package usecase implements the signup, signin, and password-reset
// workflows.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/mhodge11/chatty-backend/internal/apperror"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain/entity"
	"github.com/mhodge11/chatty-backend/internal/platform/queue"
	"github.com/mhodge11/chatty-backend/internal/platform/token"
)

// dummyHash is compared against when a signin targets an unknown username,
// so the lookup-miss and password-miss paths cost the same.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// resetTokenBytes is the entropy of a password-reset token (hex doubles it
// on the wire).
const resetTokenBytes = 20

// resetTokenTTL is how long a password-reset token stays valid.
const resetTokenTTL = time.Hour

// Deps are the collaborators an AuthUsecase orchestrates.
type Deps struct {
	Auth     AuthRepository
	Users    UserRepository
	Cache    UserCache
	Queue    JobQueue
	Uploader Uploader
	Tokens   TokenSigner
	Emails   EmailRenderer

	// CloudName composes the CDN URL of an uploaded avatar.
	CloudName string
	// ClientURL is the frontend origin reset links point at.
	ClientURL string
}

// AuthUsecase orchestrates the authentication workflows. It never touches
// storage directly; all reads and mutations go through the repositories.
type AuthUsecase struct {
	auth      AuthRepository
	users     UserRepository
	cache     UserCache
	queue     JobQueue
	uploader  Uploader
	tokens    TokenSigner
	emails    EmailRenderer
	cloudName string
	clientURL string
}

// NewAuthUsecase creates an AuthUsecase from its collaborators.
func NewAuthUsecase(d Deps) *AuthUsecase {
	return &AuthUsecase{
		auth:      d.Auth,
		users:     d.Users,
		cache:     d.Cache,
		queue:     d.Queue,
		uploader:  d.Uploader,
		tokens:    d.Tokens,
		emails:    d.Emails,
		cloudName: d.CloudName,
		clientURL: d.ClientURL,
	}
}

// SignupInput is the validated signup request body.
type SignupInput struct {
	Username    string
	Email       string
	Password    string
	AvatarColor string
	AvatarImage string
}

// AuthResult is a successful signup or signin outcome.
type AuthResult struct {
	User  *entity.UserProfile
	Token string
}

// Signup creates a new account: uniqueness check, avatar upload, cache-first
// profile write, queued persistence, token issuance. Nothing is committed
// before the upload succeeds, so a failed upload needs no compensation.
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	username := firstLetterUppercase(in.Username)
	email := strings.ToLower(in.Email)

	existing, err := u.auth.GetByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		// Deliberately vague: don't leak which field collided.
		return nil, apperror.NewBadRequest("Invalid credentials")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	authID := bson.NewObjectID()
	userID := bson.NewObjectID()
	uID, err := randomDigits(12)
	if err != nil {
		return nil, err
	}

	authRecord := &entity.AuthRecord{
		ID:          authID,
		UID:         uID,
		Username:    username,
		Email:       email,
		Password:    string(hash),
		AvatarColor: in.AvatarColor,
		CreatedAt:   time.Now(),
	}

	upload, err := u.uploader.Upload(ctx, in.AvatarImage, userID.Hex())
	if err != nil || upload.PublicID == "" {
		return nil, apperror.NewBadRequest("File upload: Error occurred. Try again.")
	}

	user := newUserProfile(authRecord, userID)
	user.ProfilePicture = fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/v%s/%s", u.cloudName, upload.Version, userID.Hex())

	// Cache-first: this is the read path for the profile until the queued
	// database write lands.
	if err := u.cache.SaveUser(ctx, userID.Hex(), uID, user); err != nil {
		return nil, fmt.Errorf("failed to cache user: %w", err)
	}

	u.enqueue(ctx, queue.JobAddAuthUser, queue.AuthUserPayload{Value: authRecord})
	u.enqueue(ctx, queue.JobAddUser, queue.UserPayload{Value: user})

	signed, err := u.tokens.Sign(claimsFor(authRecord, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &AuthResult{User: user, Token: signed}, nil
}

// Signin authenticates existing credentials. Unknown-username and
// wrong-password failures are byte-identical to resist enumeration.
func (u *AuthUsecase) Signin(ctx context.Context, username, password string) (*AuthResult, error) {
	authRecord, err := u.auth.GetByUsername(ctx, firstLetterUppercase(username))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Always run the bcrypt compare, against a dummy hash when the user is
	// unknown, to keep both failure paths on the same timing.
	hash := dummyHash
	if authRecord != nil {
		hash = authRecord.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if authRecord == nil || compareErr != nil {
		return nil, apperror.NewBadRequest("Invalid credentials")
	}

	user, err := u.users.GetByAuthID(ctx, authRecord.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}

	// The client always sees the canonical identity fields, even if the
	// profile copy is stale.
	merged := *user
	merged.AuthID = authRecord.ID
	merged.UID = authRecord.UID
	merged.Username = authRecord.Username
	merged.Email = authRecord.Email
	merged.AvatarColor = authRecord.AvatarColor
	merged.CreatedAt = authRecord.CreatedAt

	signed, err := u.tokens.Sign(claimsFor(authRecord, user.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &AuthResult{User: &merged, Token: signed}, nil
}

// CurrentUser resolves the signed-in profile, cache first with a database
// fallback. Returns (nil, nil) when the profile does not exist.
func (u *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*entity.UserProfile, error) {
	user, err := u.cache.GetUser(ctx, userID)
	if err != nil {
		slog.Warn("user cache read failed, falling back to database", "userId", userID, "error", err)
	}
	if user != nil {
		return user, nil
	}

	id, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperror.NewUnauthorized("Token is not valid. Please login.")
	}

	user, err = u.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}
	return user, nil
}

// enqueue dispatches a fire-and-forget job. A failed handoff is logged and
// swallowed: request latency stays decoupled from downstream write latency.
func (u *AuthUsecase) enqueue(ctx context.Context, name string, payload any) {
	if err := u.queue.AddJob(ctx, name, payload); err != nil {
		slog.Error("failed to enqueue job", "job", name, "error", err)
	}
}

func claimsFor(a *entity.AuthRecord, userID bson.ObjectID) token.Claims {
	return token.Claims{
		UserID:      userID.Hex(),
		AuthID:      a.ID.Hex(),
		UID:         a.UID,
		Username:    a.Username,
		Email:       a.Email,
		AvatarColor: a.AvatarColor,
	}
}

// newUserProfile builds the display projection created alongside an
// AuthRecord at signup, with zeroed counters and default preferences.
func newUserProfile(a *entity.AuthRecord, userID bson.ObjectID) *entity.UserProfile {
	return &entity.UserProfile{
		ID:          userID,
		AuthID:      a.ID,
		UID:         a.UID,
		Username:    a.Username,
		Email:       a.Email,
		AvatarColor: a.AvatarColor,
		Blocked:     []bson.ObjectID{},
		BlockedBy:   []bson.ObjectID{},
		Notifications: entity.NotificationSettings{
			Messages:  true,
			Reactions: true,
			Comments:  true,
			Follows:   true,
		},
		Social:    entity.SocialLinks{},
		CreatedAt: a.CreatedAt,
	}
}
