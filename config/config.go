package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Storage backends understood by StorageBackend.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Storage configuration
	StorageBackend string
	SQLitePath     string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	RedisURL       string
	RedisKeyPrefix string

	// JWT configuration
	JWTSecret string

	// Generation configuration
	GeminiAPIKey        string
	GeminiModel         string
	GenerationRateLimit int

	// DayBoundaryTZ names the time zone whose midnight resets daily trackers
	DayBoundaryTZ string

	// CORSAllowedOrigins lists the browser origins allowed to call the API
	CORSAllowedOrigins []string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Location resolves DayBoundaryTZ. An empty value means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.DayBoundaryTZ == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.DayBoundaryTZ)
	if err != nil {
		return nil, fmt.Errorf("invalid DAY_BOUNDARY_TZ %q: %w", c.DayBoundaryTZ, err)
	}
	return loc, nil
}

// loadCIConfig loads configuration for CI environment using only environment variables
func loadCIConfig(cfg *Config) error {
	get := os.Getenv
	applyCommon(cfg, get)

	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	if cfg.JWTSecret == "" {
		return fmt.Errorf("TEST_JWT_SECRET environment variable is required in CI environment")
	}
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	return nil
}

// loadDevConfig loads configuration for development: environment variables
// first, Docker secrets second, then local defaults
func loadDevConfig(cfg *Config) error {
	get := func(name string) string {
		if v := os.Getenv(name); v != "" {
			return v
		}
		return readSecret(strings.ToLower(name))
	}
	applyCommon(cfg, get)

	cfg.DBPassword = get("DB_PASSWORD")
	cfg.JWTSecret = get("JWT_SECRET")
	cfg.RedisPassword = get("REDIS_PASSWORD")
	cfg.GeminiAPIKey = get("GEMINI_API_KEY")

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-me"
	}
	return nil
}

// loadProdConfig loads configuration for production. Sensitive values come
// only from Docker secrets
func loadProdConfig(cfg *Config) error {
	get := func(name string) string {
		if v := readSecret(strings.ToLower(name)); v != "" {
			return v
		}
		return os.Getenv(name)
	}
	applyCommon(cfg, get)

	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.GeminiAPIKey = readSecret("gemini_api_key")
	return nil
}

// applyCommon fills the non-sensitive fields from get, applying defaults.
func applyCommon(cfg *Config, get func(string) string) {
	cfg.ServerPort = withDefault(get("SERVER_PORT"), "8080")
	cfg.ServerHost = withDefault(get("SERVER_HOST"), "0.0.0.0")
	cfg.StorageBackend = strings.ToLower(withDefault(get("STORAGE_BACKEND"), BackendMemory))
	cfg.SQLitePath = withDefault(get("SQLITE_PATH"), "nutriai.db")
	cfg.DBHost = withDefault(get("DB_HOST"), "localhost")
	cfg.DBPort = withDefault(get("DB_PORT"), "5432")
	cfg.DBUser = withDefault(get("DB_USER"), "postgres")
	cfg.DBName = withDefault(get("DB_NAME"), "nutriai")
	cfg.DBSSLMode = withDefault(get("DB_SSL_MODE"), "disable")
	cfg.RedisHost = withDefault(get("REDIS_HOST"), "localhost")
	cfg.RedisPort = withDefault(get("REDIS_PORT"), "6379")
	cfg.RedisURL = get("REDIS_URL")
	cfg.RedisKeyPrefix = withDefault(get("REDIS_KEY_PREFIX"), "nutriai:")
	cfg.RedisDB = atoiDefault(get("REDIS_DB"), 0)
	cfg.GeminiModel = withDefault(get("GEMINI_MODEL"), "gemini-2.5-flash")
	cfg.GenerationRateLimit = atoiDefault(get("GENERATION_RATE_LIMIT"), 10)
	cfg.DayBoundaryTZ = get("DAY_BOUNDARY_TZ")
	cfg.CORSAllowedOrigins = splitList(withDefault(get("CORS_ALLOWED_ORIGINS"), "http://localhost:5173"))
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func withDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func atoiDefault(value string, def int) int {
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
