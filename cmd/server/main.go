package main

import (
	"context"
	"log"
	"time"

	"github.com/mhodge11/chatty-backend/internal/app/router"
	"github.com/mhodge11/chatty-backend/internal/config"
	"github.com/mhodge11/chatty-backend/internal/feature/auth/adapters"
	authhandler "github.com/mhodge11/chatty-backend/internal/feature/auth/transport/handler"
	authusecase "github.com/mhodge11/chatty-backend/internal/feature/auth/usecase"
	"github.com/mhodge11/chatty-backend/internal/platform/cache"
	"github.com/mhodge11/chatty-backend/internal/platform/email"
	inframongo "github.com/mhodge11/chatty-backend/internal/platform/mongo"
	"github.com/mhodge11/chatty-backend/internal/platform/queue"
	infraredis "github.com/mhodge11/chatty-backend/internal/platform/redis"
	"github.com/mhodge11/chatty-backend/internal/platform/token"
	"github.com/mhodge11/chatty-backend/internal/platform/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if err := cfg.ValidateUploader(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// MongoDB
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

	// Redis
	rdb, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Println("[ERROR] Failed to close Redis client:", err)
		}
	}()

	// Repositories
	authRepo := adapters.NewAuthMongo(db)
	userRepo := adapters.NewUserMongo(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	// Platform services
	userCache := cache.NewUserCache(rdb)
	producer := queue.NewProducer(cfg.Redis.Addr, cfg.Redis.Password)
	defer func() {
		if err := producer.Close(); err != nil {
			log.Println("[ERROR] Failed to close queue producer:", err)
		}
	}()
	uploader, err := upload.New(cfg.Cloud.Name, cfg.Cloud.Key, cfg.Cloud.Secret)
	if err != nil {
		log.Fatal(err)
	}
	renderer, err := email.NewRenderer()
	if err != nil {
		log.Fatal(err)
	}
	issuer := token.NewIssuer(cfg.JWT.Secret)

	// Usecase
	authUC := authusecase.NewAuthUsecase(authusecase.Deps{
		Auth:      authRepo,
		Users:     userRepo,
		Cache:     userCache,
		Queue:     producer,
		Uploader:  uploader,
		Tokens:    issuer,
		Emails:    renderer,
		CloudName: cfg.Cloud.Name,
		ClientURL: cfg.Client.URL,
	})

	// Handler + router
	authH := authhandler.NewAuthHandler(authUC)
	r := router.NewRouter(cfg.Session.Secret, authH, issuer)

	if err := r.Run(cfg.HTTP.Addr); err != nil {
		log.Fatal(err)
	}
}
