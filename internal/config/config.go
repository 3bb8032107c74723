package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	DBDriver          string
	DBDSN             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string
	// TokenTTL of zero issues tokens without an expiry claim.
	TokenTTL       time.Duration
	RequestTimeout time.Duration

	AdminUsername string
	AdminPassword string

	CORSAllowOrigins []string
	LogLevel         string
	LogPretty        bool
	SwaggerHost      string
}

// Load builds Config from the environment. A .env file in the working
// directory is read first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBDSN:             os.Getenv("DB_DSN"),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          getEnvDuration("TOKEN_TTL", 0),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		AdminUsername:     strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		CORSAllowOrigins:  splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogPretty:         getEnvBool("LOG_PRETTY", false),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run safely with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	if c.TokenTTL < 0 {
		return errors.New("TOKEN_TTL must not be negative")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// HasAdminBootstrap reports whether an admin account should be seeded.
func (c *Config) HasAdminBootstrap() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
