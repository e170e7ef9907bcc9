package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mhodge11/chatty-backend/internal/apperror"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain"
	"github.com/mhodge11/chatty-backend/internal/platform/email"
	"github.com/mhodge11/chatty-backend/internal/platform/queue"
)

// ForgotPassword starts a password reset: stores a one-hour token on the
// account and queues the reset-link email. An unknown email yields the same
// generic failure as bad credentials.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	authRecord, err := u.auth.GetByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NewBadRequest("Invalid credentials")
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	resetToken, err := randomHex(resetTokenBytes)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(resetTokenTTL).UnixMilli()
	if err := u.auth.UpdatePasswordResetToken(ctx, authRecord.ID, resetToken, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", u.clientURL, resetToken)
	template, err := u.emails.ForgotPassword(authRecord.Username, resetLink)
	if err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}

	u.enqueue(ctx, queue.JobForgotPasswordEmail, queue.EmailPayload{
		Template:      template,
		ReceiverEmail: authRecord.Email,
		Subject:       "Reset your password",
	})

	return nil
}

// ResetPasswordInput is the validated reset-confirm request.
type ResetPasswordInput struct {
	Password        string
	ConfirmPassword string
	Token           string
	IPAddress       string
}

// ResetPassword completes a reset: the token is single-use by virtue of
// being cleared together with the password write, and queues a confirmation
// email carrying the requester's IP and a formatted timestamp.
func (u *AuthUsecase) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if in.Password != in.ConfirmPassword {
		return apperror.NewBadRequest("Passwords do not match")
	}

	authRecord, err := u.auth.GetByPasswordResetToken(ctx, in.Token)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NewBadRequest("Reset token has expired")
	}
	if err != nil {
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := u.auth.UpdatePassword(ctx, authRecord.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	template, err := u.emails.ResetConfirmation(email.ResetEmailParams{
		Username:  authRecord.Username,
		Email:     authRecord.Email,
		IPAddress: in.IPAddress,
		Date:      time.Now().Format("01/02/2006 15:04"),
	})
	if err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	u.enqueue(ctx, queue.JobForgotPasswordEmail, queue.EmailPayload{
		Template:      template,
		ReceiverEmail: authRecord.Email,
		Subject:       "Password reset confirmation",
	})

	return nil
}
