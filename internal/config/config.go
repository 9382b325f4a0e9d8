package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MetaKeys enumerates the fixed set of metadata keys the claim machinery
// reads and writes. They are never built by string concatenation at call
// sites; every consumer goes through this struct.
type MetaKeys struct {
	// Claim is set on a poet (value: claiming user id) while a claim is
	// pending, and on a user (value: list of claimed poet ids).
	Claim string
	// ClaimPrimary flags a pending claim as being for the user's one
	// primary profile slot. Set on both the poet and the user.
	ClaimPrimary string
	// Primary records a resolved primary link: user id on the poet,
	// poet id on the user.
	Primary string
	// ClaimDisable is the user's "stop asking me" opt-out flag.
	ClaimDisable string
}

// DefaultMetaKeys returns the metadata key set inherited from the
// poets-connections data layout.
func DefaultMetaKeys() MetaKeys {
	return MetaKeys{
		Claim:        "_poet_connections_claim_user_id",
		ClaimPrimary: "_poet_connections_claim_primary",
		Primary:      "_poet_connections_primary",
		ClaimDisable: "_poet_connections_claim_disable",
	}
}

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Session configuration
	SessionSecret string

	// Claim configuration
	HoldingUserID    uint64
	NotifyUserIDs    []uint64
	BatchPageSize    int
	BatchStepKey     string
	BatchScopedSteps bool
	Keys             MetaKeys
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBType:            getEnv("DB_TYPE", "mysql"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		SessionSecret:     getEnv("SESSION_SECRET", ""),
		HoldingUserID:     getEnvAsUint64("HOLDING_USER_ID", 5),
		BatchPageSize:     getEnvAsInt("BATCH_PAGE_SIZE", 10),
		BatchStepKey:      getEnv("BATCH_STEP_KEY", "_poets_resolution_step"),
		BatchScopedSteps:  getEnvAsBool("BATCH_SCOPED_STEPS", true),
		Keys:              DefaultMetaKeys(),
	}

	ids, err := parseIDList(getEnv("NOTIFY_USER_IDS", "1"))
	if err != nil {
		return nil, fmt.Errorf("NOTIFY_USER_IDS is invalid: %w", err)
	}
	cfg.NotifyUserIDs = ids

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.BatchPageSize < 1 {
		return nil, fmt.Errorf("BATCH_PAGE_SIZE must be at least 1")
	}

	return cfg, nil
}

// parseIDList parses a comma-separated list of user ids
func parseIDList(value string) ([]uint64, error) {
	var ids []uint64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("empty id list")
	}
	return ids, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsUint64 gets an environment variable as a uint64 or returns a default value
func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
