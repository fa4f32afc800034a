package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application, loaded from the
// environment and optionally seeded from a .env file.
type Config struct {
	AppPort string
	AppMode string

	DBHost string
	DBPort string
	DBName string

	// Restricted credential tier, used for read paths where row-level
	// policies apply.
	DBUser     string
	DBPassword string

	// Elevated credential tier, used for write paths that bypass row-level
	// policies. Required: Load fails when it is absent instead of silently
	// downgrading to the restricted tier.
	DBAdminUser     string
	DBAdminPassword string

	JWTSecret    string
	JWTExpiryMin int

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string
	S3PublicBase string

	PushEndpoint string
	PushAPIKey   string

	OutboxBatchSize  int
	OutboxIntervalMS int
	OutboxMaxRetries int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		AppPort: getEnv("APP_PORT", "8080"),
		AppMode: getEnv("APP_MODE", "debug"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "carspace"),

		DBUser:     getEnv("DB_USER", "carspace_reader"),
		DBPassword: getEnv("DB_PASSWORD", ""),

		DBAdminUser:     getEnv("DB_ADMIN_USER", ""),
		DBAdminPassword: getEnv("DB_ADMIN_PASSWORD", ""),

		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		JWTExpiryMin: getEnvAsInt("JWT_EXPIRY_MIN", 60),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		S3Region:     getEnv("S3_REGION", ""),
		S3Bucket:     getEnv("S3_BUCKET", ""),
		S3AccessKey:  getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:  getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:   getEnv("S3_ENDPOINT", ""),
		S3PublicBase: getEnv("S3_PUBLIC_BASE", ""),

		PushEndpoint: getEnv("PUSH_ENDPOINT", ""),
		PushAPIKey:   getEnv("PUSH_API_KEY", ""),

		OutboxBatchSize:  getEnvAsInt("OUTBOX_BATCH_SIZE", 50),
		OutboxIntervalMS: getEnvAsInt("OUTBOX_INTERVAL_MS", 1000),
		OutboxMaxRetries: getEnvAsInt("OUTBOX_MAX_RETRIES", 5),
	}

	if cfg.DBAdminUser == "" || cfg.DBAdminPassword == "" {
		return nil, errors.New("DB_ADMIN_USER and DB_ADMIN_PASSWORD are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
