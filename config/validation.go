package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines what must be set for each environment
type ConfigRequirements struct {
	// RequireSecrets demands sensitive values be non-empty
	RequireSecrets bool
	// AllowedBackends lists the storage backends usable in the environment
	AllowedBackends []string
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {
			AllowedBackends: []string{BackendMemory, BackendSQLite, BackendRedis, BackendPostgres},
		},
		Test: {
			AllowedBackends: []string{BackendMemory, BackendSQLite, BackendRedis, BackendPostgres},
		},
		CI: {
			RequireSecrets:  true,
			AllowedBackends: []string{BackendMemory, BackendSQLite, BackendRedis, BackendPostgres},
		},
		Production: {
			RequireSecrets:  true,
			AllowedBackends: []string{BackendRedis, BackendPostgres},
		},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errors []ValidationError

	if cfg.ServerPort == "" {
		errors = append(errors, ValidationError{"SERVER_PORT", "is required"})
	}

	allowed := false
	for _, b := range reqs.AllowedBackends {
		if cfg.StorageBackend == b {
			allowed = true
			break
		}
	}
	if !allowed {
		errors = append(errors, ValidationError{
			"STORAGE_BACKEND",
			fmt.Sprintf("%q is not allowed in %s (allowed: %s)", cfg.StorageBackend, env, strings.Join(reqs.AllowedBackends, ", ")),
		})
	}

	switch cfg.StorageBackend {
	case BackendPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			errors = append(errors, ValidationError{"DB_HOST", "host and name are required for the postgres backend"})
		}
		if reqs.RequireSecrets && cfg.DBPassword == "" {
			errors = append(errors, ValidationError{"DB_PASSWORD", "is required for the postgres backend"})
		}
	case BackendRedis:
		if cfg.RedisURL == "" && cfg.RedisHost == "" {
			errors = append(errors, ValidationError{"REDIS_HOST", "REDIS_HOST or REDIS_URL is required for the redis backend"})
		}
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			errors = append(errors, ValidationError{"SQLITE_PATH", "is required for the sqlite backend"})
		}
	}

	if cfg.JWTSecret == "" {
		errors = append(errors, ValidationError{"JWT_SECRET", "is required"})
	}
	if reqs.RequireSecrets && env == Production && cfg.GeminiAPIKey == "" {
		errors = append(errors, ValidationError{"GEMINI_API_KEY", "is required"})
	}

	if cfg.DayBoundaryTZ != "" {
		if _, err := time.LoadLocation(cfg.DayBoundaryTZ); err != nil {
			errors = append(errors, ValidationError{"DAY_BOUNDARY_TZ", err.Error()})
		}
	}

	if cfg.GenerationRateLimit < 0 {
		errors = append(errors, ValidationError{"GENERATION_RATE_LIMIT", "must not be negative"})
	}

	if len(errors) > 0 {
		msgs := make([]string, len(errors))
		for i, e := range errors {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
	}

	return nil
}
