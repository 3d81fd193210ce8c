package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("AUDIT_MEMORY_LIMIT", "")

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.InsecureJWTSecret())
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 1000, cfg.AuditMemoryLimit)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("BCRYPT_COST", "12")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.InsecureJWTSecret())
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "a week")
	t.Setenv("BCRYPT_COST", "ten")
	t.Setenv("AUDIT_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.AuditEnabled)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBUser:     "u",
		DBPassword: "p",
		DBHost:     "db",
		DBPort:     "5432",
		DBName:     "auth",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5432/auth?sslmode=disable", cfg.PostgresDSN())

	cfg.DatabaseURL = "postgres://other/db"
	assert.Equal(t, "postgres://other/db", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())

	cfg.CORSAllowedOrigins = ""
	assert.Empty(t, cfg.CORSOrigins())
}
