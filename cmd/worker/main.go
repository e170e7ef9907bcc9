package main

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mhodge11/chatty-backend/internal/config"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/adapters"
	"github.com/mhodge11/chatty-backend/internal/platform/email"
	inframongo "github.com/mhodge11/chatty-backend/internal/platform/mongo"
	"github.com/mhodge11/chatty-backend/internal/platform/queue"
	"github.com/mhodge11/chatty-backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if err := cfg.ValidateMailer(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := inframongo.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Println("[ERROR] Failed to disconnect mongo client:", err)
		}
	}()
	db := client.Database(cfg.Mongo.Database)

	authRepo := adapters.NewAuthMongo(db)
	userRepo := adapters.NewUserMongo(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	mailer := email.NewSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.Sender)
	handlers := worker.NewHandlers(authRepo, userRepo, mailer)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				queue.QueueAuth:  3,
				queue.QueueUser:  3,
				queue.QueueEmail: 1,
			},
		},
	)

	if err := srv.Run(handlers.Mux()); err != nil {
		log.Fatal(err)
	}
}
