package config

import (
	"os"
	"strconv"
	"time"

	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	ProfileCacheTTL  time.Duration
	RosterCacheTTL   time.Duration
	RosterStaleAfter time.Duration
	RosterLimit      int64
	BasePoints       int64
	AdminSessionTTL  time.Duration
}

// NewConfig creates a new Config instance, loading values from environment
// variables.
func NewConfig() usecasecontract.IConfigProvider {
	return &Config{
		ProfileCacheTTL:  time.Minute * time.Duration(getEnvAsInt("PROFILE_CACHE_TTL_MINUTES", 30)),
		RosterCacheTTL:   time.Minute * time.Duration(getEnvAsInt("ROSTER_CACHE_TTL_MINUTES", 5)),
		RosterStaleAfter: time.Minute * time.Duration(getEnvAsInt("ROSTER_STALE_AFTER_MINUTES", 5)),
		RosterLimit:      int64(getEnvAsInt("ROSTER_LIMIT", 50)),
		BasePoints:       int64(getEnvAsInt("BASE_POINTS", 10)),
		AdminSessionTTL:  time.Hour * time.Duration(getEnvAsInt("ADMIN_SESSION_TTL_HOURS", 12)),
	}
}

// GetProfileCacheTTL returns how long a cached profile stays fresh.
func (c *Config) GetProfileCacheTTL() time.Duration {
	return c.ProfileCacheTTL
}

// GetRosterCacheTTL returns how long a cached roster stays fresh.
func (c *Config) GetRosterCacheTTL() time.Duration {
	return c.RosterCacheTTL
}

// GetRosterStaleAfter returns the age after which a live roster subscription
// is restarted on the next acquire.
func (c *Config) GetRosterStaleAfter() time.Duration {
	return c.RosterStaleAfter
}

// GetRosterLimit returns the maximum number of ranked users fetched.
func (c *Config) GetRosterLimit() int64 {
	return c.RosterLimit
}

// GetBasePoints returns the points assigned to newly created profiles.
func (c *Config) GetBasePoints() int64 {
	return c.BasePoints
}

// GetAdminSessionTTL returns the lifetime of an admin session token.
func (c *Config) GetAdminSessionTTL() time.Duration {
	return c.AdminSessionTTL
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a
// default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
