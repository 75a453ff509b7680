package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	AppName  string `env:"APP_NAME,  default=auth-api"`
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
	CORS  CORSConfig

	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`
}

type AuthConfig struct {
	// JWTSecret signs bearer tokens. Required outside development.
	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=30m"`
	BcryptCost  int           `env:"BCRYPT_COST,  default=12"`
	PasswordMin int           `env:"PASSWORD_MIN_LENGTH, default=6"`
	PasswordMax int           `env:"PASSWORD_MAX_LENGTH, default=72"`
}

type StoreConfig struct {
	// Backend selects the user store: "file" (default) or "mongo".
	Backend   string `env:"STORE_BACKEND, default=file"`
	UsersFile string `env:"USERS_FILE,    default=users.json"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_api"`
}

type RedisConfig struct {
	Addr    string `env:"REDIS_ADDR,  default=localhost:6379"`
	DB      int    `env:"REDIS_DB,    default=0"`
	Enabled bool   `env:"REDIS_CACHE, default=false"`
}

type CORSConfig struct {
	Origins     []string `env:"CORS_ORIGINS, default=http://localhost:4200"`
	Credentials bool     `env:"CORS_CREDENTIALS, default=true"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		if c.Env != "development" {
			return errors.New("config: JWT_SECRET is required outside development")
		}
		// Development fallback; tokens do not survive restarts elsewhere.
		c.Auth.JWTSecret = "dev-only-insecure-secret"
	}
	switch c.Store.Backend {
	case "file", "mongo":
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.Store.Backend)
	}
	return nil
}
