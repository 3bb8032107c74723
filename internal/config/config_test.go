package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_DSN", "file::memory:")
	t.Setenv("DB_DRIVER", "sqlite")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, time.Duration(0), cfg.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.HasAdminBootstrap())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.True(t, cfg.HasAdminBootstrap())
}

func TestLoad_RejectsMissingSecrets(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{
			name: "no jwt secret",
			env:  map[string]string{"DB_DSN": "x", "DB_DRIVER": "sqlite"},
			msg:  "JWT_SECRET",
		},
		{
			name: "no dsn",
			env:  map[string]string{"JWT_SECRET": "x", "DB_DRIVER": "sqlite"},
			msg:  "DB_DSN",
		},
		{
			name: "unknown driver",
			env:  map[string]string{"JWT_SECRET": "x", "DB_DSN": "x", "DB_DRIVER": "oracle"},
			msg:  "DB_DRIVER",
		},
		{
			name: "admin username without password",
			env:  map[string]string{"JWT_SECRET": "x", "DB_DSN": "x", "DB_DRIVER": "sqlite", "ADMIN_USERNAME": "root"},
			msg:  "ADMIN_PASSWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"JWT_SECRET", "DB_DSN", "DB_DRIVER", "ADMIN_USERNAME", "ADMIN_PASSWORD"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
