package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origURI := os.Getenv("MONGO_URI")
	defer os.Setenv("MONGO_URI", origURI)

	os.Setenv("MONGO_URI", "mongodb://test-host:27017")
	os.Setenv("MONGO_MAX_POOL_SIZE", "20")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("STORAGE_DRIVER", "minio")

	cfg := Load()

	assert.Equal(t, "mongodb://test-host:27017", cfg.Mongo.URI)
	assert.Equal(t, 20, cfg.Mongo.MaxPoolSize)
	assert.True(t, cfg.Storage.MinIO.UseSSL)
	assert.Equal(t, "minio", cfg.Storage.Driver)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("BASE_URL")
	os.Unsetenv("BCRYPT_SALT_ROUNDS")
	os.Unsetenv("BACKUP_SCHEDULE")

	cfg := Load()

	assert.Equal(t, "http://localhost:8080", cfg.Storage.BaseURL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "0 2 * * 0", cfg.Backup.Schedule)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
