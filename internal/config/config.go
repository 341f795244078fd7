package config

import (
	"os"
	"strconv"
)

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout int // seconds
	MaxPoolSize    int
}

// StorageConfig holds file storage settings.
// Driver selects the backend: "local" (filesystem) or "minio" (S3-compatible).
type StorageConfig struct {
	Driver  string
	Root    string // root directory for the local backend
	BaseURL string // public base URL, no trailing slash
	MinIO   MinIOConfig
}

// MinIOConfig holds object storage settings for the S3-compatible backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds credential and token settings.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
	BcryptCost    int
}

// BackupConfig holds settings for the periodic collection backup job.
type BackupConfig struct {
	Enabled  bool
	Schedule string // cron expression
	Dir      string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	Mongo   MongoConfig
	Storage StorageConfig
	Auth    AuthConfig
	Backup  BackupConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", ""),
			Database:       getEnv("MONGO_DATABASE", ""),
			ConnectTimeout: getEnvInt("MONGO_CONNECT_TIMEOUT_SEC", 10),
			MaxPoolSize:    getEnvInt("MONGO_MAX_POOL_SIZE", 100),
		},
		Storage: StorageConfig{
			Driver:  getEnv("STORAGE_DRIVER", "local"),
			Root:    getEnv("STORAGE_ROOT", "."),
			BaseURL: getEnv("BASE_URL", "http://localhost:8080"),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_ACCESS_SECRET", ""),
			TokenTTLHours: getEnvInt("JWT_ACCESS_EXPIRATION_HOURS", 48),
			BcryptCost:    getEnvInt("BCRYPT_SALT_ROUNDS", 10),
		},
		Backup: BackupConfig{
			Enabled:  getEnvBool("BACKUP_ENABLED", true),
			Schedule: getEnv("BACKUP_SCHEDULE", "0 2 * * 0"),
			Dir:      getEnv("BACKUP_DIR", "backup"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
