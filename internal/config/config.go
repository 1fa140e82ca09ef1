package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Stats backends.
const (
	StatsBackendPostgres = "postgres"
	StatsBackendSQLite   = "sqlite"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"algoquest"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Session  Session
	Stats    Stats
	Banks    Banks
	CORS     CORS
}

// Postgres captures connection info for the SQL database.
// Only required when Stats.Backend is postgres.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER" envDefault:""`
	Password string `env:"PG_PASSWORD" envDefault:""`
	Database string `env:"PG_DATABASE" envDefault:""`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// DSN renders the libpq connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Redis holds session store configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Session governs persistence of in-progress quizzes.
type Session struct {
	TTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	KeyPrefix   string        `env:"SESSION_KEY_PREFIX" envDefault:"algoquest:session"`
	FinishDelay time.Duration `env:"SESSION_FINISH_DELAY" envDefault:"1500ms"`
}

// Stats selects where aggregate stats live.
type Stats struct {
	Backend    string `env:"STATS_BACKEND" envDefault:"postgres"`
	SQLitePath string `env:"STATS_SQLITE_PATH" envDefault:"data/stats.db"`
}

// Banks points at the question bank JSON files.
type Banks struct {
	Dir string `env:"BANKS_DIR" envDefault:"data/questions"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *App) Validate() error {
	switch c.Stats.Backend {
	case StatsBackendPostgres:
		if c.Postgres.User == "" || c.Postgres.Database == "" {
			return fmt.Errorf("config: PG_USER and PG_DATABASE are required for the postgres stats backend")
		}
	case StatsBackendSQLite:
		if c.Stats.SQLitePath == "" {
			return fmt.Errorf("config: STATS_SQLITE_PATH is required for the sqlite stats backend")
		}
	default:
		return fmt.Errorf("config: unknown STATS_BACKEND %q", c.Stats.Backend)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	if c.Session.FinishDelay < 0 {
		return fmt.Errorf("config: SESSION_FINISH_DELAY must not be negative")
	}
	return nil
}
