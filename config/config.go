package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Admin    AdminConfig
	Firebase FirebaseConfig
	Store    StoreConfig
	Database DatabaseConfig
	Blob     BlobConfig
	Redis    RedisConfig
	Sweep    SweepConfig
}

type ServerConfig struct {
	Port               string
	CORSOrigins        []string
	AdminRatePerMinute int
	ShutdownTimeout    time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

// AdminConfig holds the single allowlisted admin address.
type AdminConfig struct {
	Email string
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
	StorageBucket   string
}

// StoreConfig selects the document store backend: firestore, postgres or memory.
type StoreConfig struct {
	Backend    string
	Collection string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// BlobConfig selects the blob store backend: firebase, s3 or memory.
type BlobConfig struct {
	Backend        string
	Namespace      string
	MaxUploadBytes int64
	MaxWidth       int

	S3Region        string
	S3Bucket        string
	S3Endpoint      string
	S3PublicBaseURL string
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

type SweepConfig struct {
	Enabled  bool
	Schedule string
	Grace    time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			CORSOrigins:        getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
			AdminRatePerMinute: getEnvAsInt("ADMIN_RATE_PER_MINUTE", 120),
			ShutdownTimeout:    getEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Admin: AdminConfig{
			Email: strings.TrimSpace(getEnv("ADMIN_EMAIL", "")),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			StorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
		},
		Store: StoreConfig{
			Backend:    getEnv("DOCUMENT_STORE", "firestore"),
			Collection: getEnv("PROJECTS_COLLECTION", "projects"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "portfolio"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Blob: BlobConfig{
			Backend:         getEnv("BLOB_STORE", "firebase"),
			Namespace:       getEnv("MEDIA_NAMESPACE", "projects"),
			MaxUploadBytes:  int64(getEnvAsInt("MEDIA_MAX_UPLOAD_BYTES", 10<<20)),
			MaxWidth:        getEnvAsInt("MEDIA_MAX_WIDTH", 0),
			S3Region:        getEnv("S3_REGION", "us-east-1"),
			S3Bucket:        getEnv("S3_BUCKET", ""),
			S3Endpoint:      getEnv("S3_ENDPOINT", ""),
			S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			SessionTTL: getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		},
		Sweep: SweepConfig{
			Enabled:  getEnvAsBool("MEDIA_SWEEP_ENABLED", false),
			Schedule: getEnv("MEDIA_SWEEP_SCHEDULE", "0 30 3 * * *"),
			Grace:    getEnvAsDuration("MEDIA_SWEEP_GRACE", 24*time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Admin.Email == "" {
		return fmt.Errorf("ADMIN_EMAIL is required")
	}

	switch c.Store.Backend {
	case "firestore", "memory":
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
	default:
		return fmt.Errorf("unknown DOCUMENT_STORE %q", c.Store.Backend)
	}

	switch c.Blob.Backend {
	case "memory":
	case "firebase":
		if c.Firebase.StorageBucket == "" {
			return fmt.Errorf("FIREBASE_STORAGE_BUCKET is required")
		}
	case "s3":
		if c.Blob.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required")
		}
	default:
		return fmt.Errorf("unknown BLOB_STORE %q", c.Blob.Backend)
	}

	if c.Blob.Namespace == "" {
		return fmt.Errorf("MEDIA_NAMESPACE is required")
	}

	return nil
}

// UsesFirebase reports whether any configured backend needs the Firebase app.
func (c *Config) UsesFirebase() bool {
	return c.Store.Backend == "firestore" || c.Blob.Backend == "firebase"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
