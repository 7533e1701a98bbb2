package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"tinytunes"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Storage  Storage
	Security Security
	Game     Game
	CORS     CORS
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds cache configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Storage configures the object store backing image uploads.
type Storage struct {
	Endpoint      string `env:"STORAGE_ENDPOINT,notEmpty"`
	AccessKey     string `env:"STORAGE_ACCESS_KEY,notEmpty"`
	SecretKey     string `env:"STORAGE_SECRET_KEY,notEmpty"`
	Bucket        string `env:"STORAGE_BUCKET" envDefault:"tinytunes"`
	Region        string `env:"STORAGE_REGION" envDefault:"auto"`
	UseSSL        bool   `env:"STORAGE_USE_SSL" envDefault:"true"`
	PublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL,notEmpty"`
}

// Security stores secrets for admin access and session signing.
type Security struct {
	AdminAPIKey       string        `env:"ADMIN_API_KEY,notEmpty"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH,notEmpty"`
	JWTSecret         string        `env:"JWT_SECRET,notEmpty"`
	AdminSessionTTL   time.Duration `env:"ADMIN_SESSION_TTL" envDefault:"12h"`
}

// Game groups quiz gameplay tunables.
type Game struct {
	ChoiceCount    int           `env:"QUIZ_CHOICE_COUNT" envDefault:"4"`
	TokenTTL       time.Duration `env:"QUIZ_TOKEN_TTL" envDefault:"600s"`
	PreviewSeconds int           `env:"QUIZ_PREVIEW_SECONDS" envDefault:"5"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization,X-API-Key,X-Admin-Key"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
