package config

import (
	"os"
	"strconv"
	"time"
)

const (
	// DriverSQLite selects the embedded SQLite backend (default).
	DriverSQLite = "sqlite"
	// DriverPostgres selects the PostgreSQL backend.
	DriverPostgres = "postgres"
)

// DatabaseConfig holds relational store connection settings.
// Host/Port/User/Password/Name/SSLMode apply to PostgreSQL, SQLitePath to SQLite.
type DatabaseConfig struct {
	Driver             string
	SQLitePath         string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings used to publish NFT images.
// Leaving Endpoint empty disables MinIO and falls back to ImageBaseURL.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an object store endpoint was configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port            string
	TimeZone        string
	ReadTimeoutSec  int
	WriteTimeoutSec int
	ImageBaseURL    string
	Database        DatabaseConfig
	MinIO           MinIOConfig
}

// Location resolves TimeZone, falling back to UTC for unknown names.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:            getEnv("PORT", "8080"),
		TimeZone:        getEnv("APP_TIMEZONE", "UTC"),
		ReadTimeoutSec:  getEnvInt("READ_TIMEOUT_SEC", 10),
		WriteTimeoutSec: getEnvInt("WRITE_TIMEOUT_SEC", 10),
		ImageBaseURL:    getEnv("IMAGE_BASE_URL", "https://example.com"),
		Database: DatabaseConfig{
			Driver:             getEnv("DB_DRIVER", DriverSQLite),
			SQLitePath:         getEnv("DB_SQLITE_PATH", "./doggen.db"),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
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
