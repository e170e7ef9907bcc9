// Package worker consumes the background job queues: persisting signup
// documents and delivering email.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain/entity"
	"github.com/mhodge11/chatty-backend/internal/platform/queue"
)

// AuthWriter persists AuthRecords.
type AuthWriter interface {
	Create(ctx context.Context, record *entity.AuthRecord) error
}

// UserWriter persists UserProfiles.
type UserWriter interface {
	Create(ctx context.Context, user *entity.UserProfile) error
}

// Mailer delivers one rendered email.
type Mailer interface {
	Send(to, subject, html string) error
}

// Handlers processes the jobs the API server enqueues.
type Handlers struct {
	auth   AuthWriter
	users  UserWriter
	mailer Mailer
}

// NewHandlers creates the job handlers.
func NewHandlers(auth AuthWriter, users UserWriter, mailer Mailer) *Handlers {
	return &Handlers{auth: auth, users: users, mailer: mailer}
}

// Mux registers every job handler on a fresh ServeMux.
func (h *Handlers) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.JobAddAuthUser, h.HandleAddAuthUser)
	mux.HandleFunc(queue.JobAddUser, h.HandleAddUser)
	mux.HandleFunc(queue.JobForgotPasswordEmail, h.HandleEmail)
	return mux
}

// HandleAddAuthUser inserts the AuthRecord created at signup. A duplicate
// key means the request-path uniqueness check lost a race; retrying cannot
// succeed, so the job is dropped.
func (h *Handlers) HandleAddAuthUser(ctx context.Context, t *asynq.Task) error {
	var payload queue.AuthUserPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", queue.JobAddAuthUser, err)
	}

	err := h.auth.Create(ctx, payload.Value)
	if errors.Is(err, domain.ErrDuplicateKey) {
		slog.Error("dropping duplicate auth record", "username", payload.Value.Username)
		return nil
	}
	return err
}

// HandleAddUser inserts the UserProfile created at signup.
func (h *Handlers) HandleAddUser(ctx context.Context, t *asynq.Task) error {
	var payload queue.UserPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", queue.JobAddUser, err)
	}
	return h.users.Create(ctx, payload.Value)
}

// HandleEmail delivers one rendered email.
func (h *Handlers) HandleEmail(ctx context.Context, t *asynq.Task) error {
	var payload queue.EmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", queue.JobForgotPasswordEmail, err)
	}
	return h.mailer.Send(payload.ReceiverEmail, payload.Subject, payload.Template)
}
