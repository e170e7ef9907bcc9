package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain/entity"
	"github.com/mhodge11/chatty-backend/internal/platform/email"
	"github.com/mhodge11/chatty-backend/internal/platform/token"
	"github.com/mhodge11/chatty-backend/internal/platform/upload"
)

// mockAuthRepository is a function-field mock of AuthRepository.
type mockAuthRepository struct {
	GetByUsernameFunc            func(ctx context.Context, username string) (*entity.AuthRecord, error)
	GetByEmailFunc               func(ctx context.Context, email string) (*entity.AuthRecord, error)
	GetByUsernameOrEmailFunc     func(ctx context.Context, username, email string) (*entity.AuthRecord, error)
	GetByPasswordResetTokenFunc  func(ctx context.Context, resetToken string) (*entity.AuthRecord, error)
	UpdatePasswordResetTokenFunc func(ctx context.Context, id bson.ObjectID, resetToken string, expiresAt int64) error
	UpdatePasswordFunc           func(ctx context.Context, id bson.ObjectID, passwordHash string) error
}

func (m *mockAuthRepository) GetByUsername(ctx context.Context, username string) (*entity.AuthRecord, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, domain.ErrNotFound
}

func (m *mockAuthRepository) GetByEmail(ctx context.Context, email string) (*entity.AuthRecord, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *mockAuthRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*entity.AuthRecord, error) {
	if m.GetByUsernameOrEmailFunc != nil {
		return m.GetByUsernameOrEmailFunc(ctx, username, email)
	}
	return nil, domain.ErrNotFound
}

func (m *mockAuthRepository) GetByPasswordResetToken(ctx context.Context, resetToken string) (*entity.AuthRecord, error) {
	if m.GetByPasswordResetTokenFunc != nil {
		return m.GetByPasswordResetTokenFunc(ctx, resetToken)
	}
	return nil, domain.ErrNotFound
}

func (m *mockAuthRepository) UpdatePasswordResetToken(ctx context.Context, id bson.ObjectID, resetToken string, expiresAt int64) error {
	if m.UpdatePasswordResetTokenFunc != nil {
		return m.UpdatePasswordResetTokenFunc(ctx, id, resetToken, expiresAt)
	}
	return nil
}

func (m *mockAuthRepository) UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

// mockUserRepository is a function-field mock of UserRepository.
type mockUserRepository struct {
	GetByIDFunc     func(ctx context.Context, id bson.ObjectID) (*entity.UserProfile, error)
	GetByAuthIDFunc func(ctx context.Context, authID bson.ObjectID) (*entity.UserProfile, error)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*entity.UserProfile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepository) GetByAuthID(ctx context.Context, authID bson.ObjectID) (*entity.UserProfile, error) {
	if m.GetByAuthIDFunc != nil {
		return m.GetByAuthIDFunc(ctx, authID)
	}
	return nil, domain.ErrNotFound
}

// mockUserCache records cache writes and serves configured reads.
type mockUserCache struct {
	SaveUserFunc func(ctx context.Context, userID, uID string, user *entity.UserProfile) error
	GetUserFunc  func(ctx context.Context, userID string) (*entity.UserProfile, error)

	savedUserID string
	savedUID    string
	savedUser   *entity.UserProfile
	saveCalls   int
}

func (m *mockUserCache) SaveUser(ctx context.Context, userID, uID string, user *entity.UserProfile) error {
	m.saveCalls++
	m.savedUserID = userID
	m.savedUID = uID
	m.savedUser = user
	if m.SaveUserFunc != nil {
		return m.SaveUserFunc(ctx, userID, uID, user)
	}
	return nil
}

func (m *mockUserCache) GetUser(ctx context.Context, userID string) (*entity.UserProfile, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return nil, nil
}

// enqueuedJob is one AddJob call observed by mockJobQueue.
type enqueuedJob struct {
	name    string
	payload any
}

type mockJobQueue struct {
	AddJobFunc func(ctx context.Context, name string, payload any) error

	jobs []enqueuedJob
}

func (m *mockJobQueue) AddJob(ctx context.Context, name string, payload any) error {
	m.jobs = append(m.jobs, enqueuedJob{name: name, payload: payload})
	if m.AddJobFunc != nil {
		return m.AddJobFunc(ctx, name, payload)
	}
	return nil
}

type mockUploader struct {
	UploadFunc func(ctx context.Context, image, publicID string) (upload.Result, error)

	uploadCalls int
}

func (m *mockUploader) Upload(ctx context.Context, image, publicID string) (upload.Result, error) {
	m.uploadCalls++
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, image, publicID)
	}
	return upload.Result{PublicID: "123456", Version: "123456789"}, nil
}

type mockTokenSigner struct {
	SignFunc func(claims token.Claims) (string, error)

	signedClaims *token.Claims
}

func (m *mockTokenSigner) Sign(claims token.Claims) (string, error) {
	m.signedClaims = &claims
	if m.SignFunc != nil {
		return m.SignFunc(claims)
	}
	return "mock-jwt-token", nil
}

type mockEmailRenderer struct {
	ForgotPasswordFunc    func(username, resetLink string) (string, error)
	ResetConfirmationFunc func(params email.ResetEmailParams) (string, error)

	forgotUsername  string
	forgotResetLink string
	resetParams     *email.ResetEmailParams
}

func (m *mockEmailRenderer) ForgotPassword(username, resetLink string) (string, error) {
	m.forgotUsername = username
	m.forgotResetLink = resetLink
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(username, resetLink)
	}
	return "<html>reset</html>", nil
}

func (m *mockEmailRenderer) ResetConfirmation(params email.ResetEmailParams) (string, error) {
	m.resetParams = &params
	if m.ResetConfirmationFunc != nil {
		return m.ResetConfirmationFunc(params)
	}
	return "<html>confirmation</html>", nil
}

// newTestUsecase wires an AuthUsecase over the given mocks, filling in
// defaults for any left nil.
func newTestUsecase(auth *mockAuthRepository, users *mockUserRepository, cache *mockUserCache,
	q *mockJobQueue, up *mockUploader, signer *mockTokenSigner, emails *mockEmailRenderer) *AuthUsecase {
	if auth == nil {
		auth = &mockAuthRepository{}
	}
	if users == nil {
		users = &mockUserRepository{}
	}
	if cache == nil {
		cache = &mockUserCache{}
	}
	if q == nil {
		q = &mockJobQueue{}
	}
	if up == nil {
		up = &mockUploader{}
	}
	if signer == nil {
		signer = &mockTokenSigner{}
	}
	if emails == nil {
		emails = &mockEmailRenderer{}
	}
	return NewAuthUsecase(Deps{
		Auth:      auth,
		Users:     users,
		Cache:     cache,
		Queue:     q,
		Uploader:  up,
		Tokens:    signer,
		Emails:    emails,
		CloudName: "test-cloud",
		ClientURL: "http://localhost:3000",
	})
}
