// Package config loads the service configuration from the environment and
// validates required fields once at startup.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces every environment variable the service reads,
// e.g. CHATTY_JWT_SECRET becomes jwt.secret.
const envPrefix = "CHATTY_"

// Config carries every setting a component needs, injected explicitly at
// construction instead of read from the environment at call sites.
type Config struct {
	HTTP struct {
		Addr string `koanf:"addr"`
	} `koanf:"http"`
	Mongo struct {
		URI      string `koanf:"uri"`
		Database string `koanf:"database"`
	} `koanf:"mongo"`
	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`
	JWT struct {
		Secret string `koanf:"secret"`
	} `koanf:"jwt"`
	Session struct {
		Secret string `koanf:"secret"`
	} `koanf:"session"`
	Client struct {
		URL string `koanf:"url"`
	} `koanf:"client"`
	Cloud struct {
		Name   string `koanf:"name"`
		Key    string `koanf:"key"`
		Secret string `koanf:"secret"`
	} `koanf:"cloud"`
	SMTP struct {
		Host     string `koanf:"host"`
		Port     int    `koanf:"port"`
		User     string `koanf:"user"`
		Password string `koanf:"password"`
		Sender   string `koanf:"sender"`
	} `koanf:"smtp"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"http.addr":      ":5000",
		"mongo.database": "chatty",
		"redis.addr":     "localhost:6379",
		"client.url":     "http://localhost:3000",
		"smtp.port":      587,
	}
}

// Load reads configuration from CHATTY_* environment variables on top of the
// built-in defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks the fields both binaries depend on.
func (c *Config) Validate() error {
	var missing []string
	if c.Mongo.URI == "" {
		missing = append(missing, "CHATTY_MONGO_URI")
	}
	if c.Redis.Addr == "" {
		missing = append(missing, "CHATTY_REDIS_ADDR")
	}
	if c.JWT.Secret == "" {
		missing = append(missing, "CHATTY_JWT_SECRET")
	}
	if c.Session.Secret == "" {
		missing = append(missing, "CHATTY_SESSION_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateUploader checks the cloudinary credentials the API server needs.
func (c *Config) ValidateUploader() error {
	if c.Cloud.Name == "" || c.Cloud.Key == "" || c.Cloud.Secret == "" {
		return fmt.Errorf("missing required configuration: CHATTY_CLOUD_NAME, CHATTY_CLOUD_KEY, CHATTY_CLOUD_SECRET")
	}
	return nil
}

// ValidateMailer checks the SMTP settings the worker needs.
func (c *Config) ValidateMailer() error {
	var missing []string
	if c.SMTP.Host == "" {
		missing = append(missing, "CHATTY_SMTP_HOST")
	}
	if c.SMTP.Sender == "" {
		missing = append(missing, "CHATTY_SMTP_SENDER")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
