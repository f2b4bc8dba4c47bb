package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the immutable process configuration: built once at startup from
// the environment and passed into component constructors. Nothing here is
// mutated after Load returns.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs access tokens. Required: there is no safe default for
	// a signing key.
	JWTSecret string `env:"JWT_SECRET, required"`

	// TokenTTL bounds the lifetime of issued tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	// BcryptCost is the password hashing work factor.
	BcryptCost int `env:"BCRYPT_COST, default=10"`

	// Admin credentials seed the bootstrap admin identity when set.
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
