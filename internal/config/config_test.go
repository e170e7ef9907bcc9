package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTP.Addr)
	assert.Equal(t, "chatty", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CHATTY_MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("CHATTY_JWT_SECRET", "jwt-secret")
	t.Setenv("CHATTY_SESSION_SECRET", "session-secret")
	t.Setenv("CHATTY_HTTP_ADDR", ":8080")
	t.Setenv("CHATTY_CLOUD_NAME", "demo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "jwt-secret", cfg.JWT.Secret)
	assert.Equal(t, "session-secret", cfg.Session.Secret)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "demo", cfg.Cloud.Name)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Redis.Addr = "localhost:6379"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHATTY_MONGO_URI")
	assert.Contains(t, err.Error(), "CHATTY_JWT_SECRET")
	assert.NotContains(t, err.Error(), "CHATTY_REDIS_ADDR")

	cfg.Mongo.URI = "mongodb://localhost:27017"
	cfg.JWT.Secret = "jwt-secret"
	cfg.Session.Secret = "session-secret"
	assert.NoError(t, cfg.Validate())
}

func TestValidateMailer(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.ValidateMailer())

	cfg.SMTP.Host = "smtp.example.com"
	cfg.SMTP.Sender = "noreply@example.com"
	assert.NoError(t, cfg.ValidateMailer())
}
