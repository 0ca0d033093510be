package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, []string{"https://*", "http://*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SESSION_TTL", "90m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 90*time.Minute, cfg.Auth.SessionTTL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"short secret", map[string]string{"JWT_SECRET": "short"}},
		{"unknown driver", map[string]string{"JWT_SECRET": "0123456789abcdef0123", "DB_DRIVER": "mysql"}},
		{"bad port", map[string]string{"JWT_SECRET": "0123456789abcdef0123", "PORT": "eighty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDBConfigDSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: "5432", Database: "todos", Username: "u", Password: "p", Schema: "app"}
	assert.Equal(t, "host=db user=u password=p dbname=todos port=5432 sslmode=disable search_path=app", c.DSN())
}
