// Package queue dispatches background jobs to the Redis-backed task queues
// consumed by cmd/worker.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/mhodge11/chatty-backend/internal/feature/auth/domain/entity"
)

// Job names, shared between producer and worker.
const (
	JobAddAuthUser         = "addAuthUserToDB"
	JobAddUser             = "addUserToDB"
	JobForgotPasswordEmail = "forgotPasswordEmail"
)

// Queue names; persistence jobs outrank email delivery.
const (
	QueueAuth  = "auth"
	QueueUser  = "user"
	QueueEmail = "email"
)

// AuthUserPayload persists a freshly signed-up AuthRecord.
type AuthUserPayload struct {
	Value *entity.AuthRecord `json:"value"`
}

// UserPayload persists a freshly signed-up UserProfile.
type UserPayload struct {
	Value *entity.UserProfile `json:"value"`
}

// EmailPayload delivers one rendered email.
type EmailPayload struct {
	Template      string `json:"template"`
	ReceiverEmail string `json:"receiverEmail"`
	Subject       string `json:"subject"`
}

// queueForJob routes a job name to its queue. Unknown names land on the
// email queue rather than being dropped.
func queueForJob(name string) string {
	switch name {
	case JobAddAuthUser:
		return QueueAuth
	case JobAddUser:
		return QueueUser
	default:
		return QueueEmail
	}
}

// Producer enqueues jobs through an asynq client. Enqueued jobs are
// at-least-once; retries and backoff are the queue's concern.
type Producer struct {
	client *asynq.Client
}

// NewProducer creates a Producer talking to the given Redis instance.
func NewProducer(redisAddr, redisPassword string) *Producer {
	return &Producer{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword}),
	}
}

// AddJob serializes the payload and hands it to the queue for the named job.
// The caller does not wait on processing.
func (p *Producer) AddJob(ctx context.Context, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", name, err)
	}

	task := asynq.NewTask(name, data)
	if _, err := p.client.EnqueueContext(ctx, task, asynq.Queue(queueForJob(name)), asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", name, err)
	}
	return nil
}

// Close releases the underlying client connection.
func (p *Producer) Close() error {
	return p.client.Close()
}
