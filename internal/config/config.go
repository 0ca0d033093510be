package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	DB   DBConfig
	Auth AuthConfig
	CORS CORSConfig
}

type AppConfig struct {
	Env      string `env:"APP_ENV" env-default:"dev"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Port         int           `env:"PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"1m"`
}

// DBConfig keeps the BLUEPRINT_DB_* names used by the existing deployments.
type DBConfig struct {
	Driver     string `env:"DB_DRIVER" env-default:"postgres"`
	Host       string `env:"BLUEPRINT_DB_HOST" env-default:"localhost"`
	Port       string `env:"BLUEPRINT_DB_PORT" env-default:"5432"`
	Database   string `env:"BLUEPRINT_DB_DATABASE" env-default:"todos"`
	Username   string `env:"BLUEPRINT_DB_USERNAME" env-default:"postgres"`
	Password   string `env:"BLUEPRINT_DB_PASSWORD"`
	Schema     string `env:"BLUEPRINT_DB_SCHEMA" env-default:"public"`
	SQLitePath string `env:"SQLITE_PATH" env-default:"todos.db"`
	LogLevel   string `env:"DB_LOG_LEVEL" env-default:"warn"`

	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"100"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
}

// DSN returns the postgres connection string.
func (c DBConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.Username, c.Password, c.Database, c.Port)
	if c.Schema != "" {
		dsn += " search_path=" + c.Schema
	}
	return dsn
}

type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET" env-required:"true"`
	SessionTTL   time.Duration `env:"SESSION_TTL" env-default:"24h"`
	SecureCookie bool          `env:"SECURE_COOKIE" env-default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"https://*,http://*" env-separator:","`
}

// Load reads the configuration from the environment (and a .env file, if any).
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DB.Driver)
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}
