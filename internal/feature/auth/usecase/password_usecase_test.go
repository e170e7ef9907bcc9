package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/mhodge11/chatty-backend/internal/apperror"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain/entity"
	"github.com/mhodge11/chatty-backend/internal/platform/queue"
)

func TestForgotPassword_Success(t *testing.T) {
	authID := bson.NewObjectID()
	var storedToken string
	var storedExpiry int64

	auth := &mockAuthRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.AuthRecord, error) {
			assert.Equal(t, "danny@test.com", email)
			return &entity.AuthRecord{ID: authID, Username: "Danny", Email: "danny@test.com"}, nil
		},
		UpdatePasswordResetTokenFunc: func(ctx context.Context, id bson.ObjectID, resetToken string, expiresAt int64) error {
			assert.Equal(t, authID, id)
			storedToken = resetToken
			storedExpiry = expiresAt
			return nil
		},
	}
	q := &mockJobQueue{}
	emails := &mockEmailRenderer{}

	uc := newTestUsecase(auth, nil, nil, q, nil, nil, emails)
	// Mixed-case input is matched against the stored lowercased email.
	err := uc.ForgotPassword(context.Background(), "Danny@Test.com")
	require.NoError(t, err)

	// 20 random bytes, hex encoded.
	assert.Regexp(t, `^[0-9a-f]{40}$`, storedToken)

	// Expiry is one hour ahead, in epoch milliseconds.
	wantExpiry := time.Now().Add(time.Hour).UnixMilli()
	assert.InDelta(t, wantExpiry, storedExpiry, float64(5*time.Second.Milliseconds()))

	// The rendered reset link carries the token.
	assert.Equal(t, "Danny", emails.forgotUsername)
	assert.Equal(t, "http://localhost:3000/reset-password?token="+storedToken, emails.forgotResetLink)

	require.Len(t, q.jobs, 1)
	assert.Equal(t, queue.JobForgotPasswordEmail, q.jobs[0].name)
	payload, ok := q.jobs[0].payload.(queue.EmailPayload)
	require.True(t, ok)
	assert.Equal(t, "danny@test.com", payload.ReceiverEmail)
	assert.Equal(t, "Reset your password", payload.Subject)
	assert.NotEmpty(t, payload.Template)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	q := &mockJobQueue{}
	uc := newTestUsecase(&mockAuthRepository{}, nil, nil, q, nil, nil, nil)

	err := uc.ForgotPassword(context.Background(), "nobody@test.com")
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid credentials", appErr.Message)
	assert.Empty(t, q.jobs)
}

func TestResetPassword_PasswordMismatch(t *testing.T) {
	auth := &mockAuthRepository{}
	lookups := 0
	auth.GetByPasswordResetTokenFunc = func(ctx context.Context, resetToken string) (*entity.AuthRecord, error) {
		lookups++
		return nil, nil
	}

	uc := newTestUsecase(auth, nil, nil, nil, nil, nil, nil)
	err := uc.ResetPassword(context.Background(), ResetPasswordInput{
		Password:        "qwerty",
		ConfirmPassword: "ytrewq",
		Token:           "sometoken",
	})
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Passwords do not match", appErr.Message)
	assert.Zero(t, lookups)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	uc := newTestUsecase(&mockAuthRepository{}, nil, nil, nil, nil, nil, nil)

	err := uc.ResetPassword(context.Background(), ResetPasswordInput{
		Password:        "qwerty",
		ConfirmPassword: "qwerty",
		Token:           "expired-or-unknown",
	})
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Reset token has expired", appErr.Message)
}

func TestResetPassword_TokenIsSingleUse(t *testing.T) {
	authID := bson.NewObjectID()
	record := &entity.AuthRecord{
		ID:                 authID,
		Username:           "Danny",
		Email:              "danny@test.com",
		PasswordResetToken: "valid-token",
	}

	// The password write clears the token, so the second lookup misses,
	// exactly as the mongo adapter's $unset behaves.
	auth := &mockAuthRepository{
		GetByPasswordResetTokenFunc: func(ctx context.Context, resetToken string) (*entity.AuthRecord, error) {
			if record.PasswordResetToken != resetToken {
				return nil, domain.ErrNotFound
			}
			return record, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, id bson.ObjectID, passwordHash string) error {
			record.Password = passwordHash
			record.PasswordResetToken = ""
			record.PasswordResetExpires = 0
			return nil
		},
	}

	uc := newTestUsecase(auth, nil, nil, nil, nil, nil, nil)
	in := ResetPasswordInput{
		Password:        "new-pass",
		ConfirmPassword: "new-pass",
		Token:           "valid-token",
		IPAddress:       "203.0.113.7",
	}

	require.NoError(t, uc.ResetPassword(context.Background(), in))

	err := uc.ResetPassword(context.Background(), in)
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Reset token has expired", appErr.Message)
}

func TestResetPassword_Success(t *testing.T) {
	authID := bson.NewObjectID()
	var updatedHash string

	auth := &mockAuthRepository{
		GetByPasswordResetTokenFunc: func(ctx context.Context, resetToken string) (*entity.AuthRecord, error) {
			assert.Equal(t, "valid-token", resetToken)
			return &entity.AuthRecord{ID: authID, Username: "Danny", Email: "danny@test.com"}, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, id bson.ObjectID, passwordHash string) error {
			assert.Equal(t, authID, id)
			updatedHash = passwordHash
			return nil
		},
	}
	q := &mockJobQueue{}
	emails := &mockEmailRenderer{}

	uc := newTestUsecase(auth, nil, nil, q, nil, nil, emails)
	err := uc.ResetPassword(context.Background(), ResetPasswordInput{
		Password:        "new-pass",
		ConfirmPassword: "new-pass",
		Token:           "valid-token",
		IPAddress:       "203.0.113.7",
	})
	require.NoError(t, err)

	// The stored value is a salted hash of the new password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updatedHash), []byte("new-pass")))

	require.NotNil(t, emails.resetParams)
	assert.Equal(t, "Danny", emails.resetParams.Username)
	assert.Equal(t, "danny@test.com", emails.resetParams.Email)
	assert.Equal(t, "203.0.113.7", emails.resetParams.IPAddress)
	assert.NotEmpty(t, emails.resetParams.Date)

	require.Len(t, q.jobs, 1)
	assert.Equal(t, queue.JobForgotPasswordEmail, q.jobs[0].name)
	payload, ok := q.jobs[0].payload.(queue.EmailPayload)
	require.True(t, ok)
	assert.Equal(t, "Password reset confirmation", payload.Subject)
}
