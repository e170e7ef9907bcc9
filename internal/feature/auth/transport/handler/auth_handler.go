// Package handler exposes the auth workflows over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mhodge11/chatty-backend/internal/apperror"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain/entity"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/transport/http/dto"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/usecase"
	"github.com/mhodge11/chatty-backend/internal/platform/middleware"
)

// AuthUsecase defines the workflows this handler drives. The interface lives
// with the consumer (this package), not the provider (usecase).
type AuthUsecase interface {
	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.AuthResult, error)
	Signin(ctx context.Context, username, password string) (*usecase.AuthResult, error)
	CurrentUser(ctx context.Context, userID string) (*entity.UserProfile, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in usecase.ResetPasswordInput) error
}

// AuthHandler processes the auth HTTP endpoints.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates an AuthHandler around the given usecase.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Abort(c, apperror.NewBadRequest("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		middleware.Abort(c, apperror.NewValidation(err.Error()))
		return
	}

	res, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		AvatarColor: req.AvatarColor,
		AvatarImage: req.AvatarImage,
	})
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	if err := middleware.SetSessionToken(c, res.Token); err != nil {
		slog.Error("failed to save session", "error", err)
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    res.User,
		"token":   res.Token,
	})
}

// Signin handles POST /signin.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req dto.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Abort(c, apperror.NewBadRequest("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		middleware.Abort(c, apperror.NewValidation(err.Error()))
		return
	}

	res, err := h.auth.Signin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	if err := middleware.SetSessionToken(c, res.Token); err != nil {
		slog.Error("failed to save session", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully",
		"user":    res.User,
		"token":   res.Token,
	})
}

// Signout handles GET /signout.
func (h *AuthHandler) Signout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		slog.Error("failed to clear session", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
		"user":    gin.H{},
		"token":   "",
	})
}

// CurrentUser handles GET /currentuser on the guarded group.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Abort(c, apperror.NewUnauthorized("Authentication is required. Please login."))
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), claims.UserID)
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  middleware.SessionToken(c),
		"isUser": user != nil,
		"user":   user,
	})
}

// ForgotPassword handles POST /password, the reset request phase.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Abort(c, apperror.NewBadRequest("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		middleware.Abort(c, apperror.NewValidation(err.Error()))
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

// ResetPassword handles PATCH /password/:token, the reset confirm phase.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Abort(c, apperror.NewBadRequest("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		middleware.Abort(c, apperror.NewValidation(err.Error()))
		return
	}

	err := h.auth.ResetPassword(c.Request.Context(), usecase.ResetPasswordInput{
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Token:           c.Param("token"),
		IPAddress:       c.ClientIP(),
	})
	if err != nil {
		middleware.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
