package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string        `toml:"env" env:"ENV" env-default:"prod"`
	Language string        `toml:"language" env:"APP_LANGUAGE" env-default:"en"`
	Log      LogConfig     `toml:"log"`
	Storage  StorageConfig `toml:"storage"`
	Auth     AuthConfig    `toml:"auth"`
}

type LogConfig struct {
	// Path sends logs to a file instead of stdout. The TUI discards logs
	// when it's empty.
	Path string `toml:"path" env:"LOG_PATH"`
}

type StorageConfig struct {
	Path           string        `toml:"path" env:"STORAGE_PATH" env-default:"todo-data.json"`
	Latency        time.Duration `toml:"latency" env:"STORAGE_LATENCY" env-default:"0s"`
	ValidateSchema bool          `toml:"validate_schema" env:"STORAGE_VALIDATE_SCHEMA" env-default:"true"`
	SeedDemoData   bool          `toml:"seed_demo_data" env:"SEED_DEMO_DATA" env-default:"false"`
}

type AuthConfig struct {
	TokenIssuer     string        `toml:"token_issuer" env:"AUTH_TOKEN_ISSUER" env-default:"go-todo-board"`
	TokenSigningKey string        `toml:"token_signing_key" env:"AUTH_TOKEN_SIGNING_KEY" env-default:"go-todo-board-local-key"`
	TokenTTL        time.Duration `toml:"token_ttl" env:"AUTH_TOKEN_TTL" env-default:"720h"`
	PasswordHashing string        `toml:"password_hashing" env:"AUTH_PASSWORD_HASHING" env-default:"plain"`
}

var (
	ErrUnknownEnv             = errors.New("unknown env")
	ErrUnknownPasswordHashing = errors.New("unknown password hashing")
	ErrEmptySigningKey        = errors.New("token signing key must not be empty")
)

func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownEnv, c.Env)
	}

	switch c.Auth.PasswordHashing {
	case "plain", "argon2id":
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPasswordHashing, c.Auth.PasswordHashing)
	}

	if c.Auth.TokenSigningKey == "" {
		return ErrEmptySigningKey
	}
	return nil
}
