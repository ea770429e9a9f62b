package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultProfileID is the profile every install starts on
const DefaultProfileID = "defaultPlayer-2"

// Config holds application configuration
type Config struct {
	StoreType    string
	DatabasePath string
	DatabaseURL  string
	GdataAppName string
	ProfileID    string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to read .env file: %v", err)
	}

	return &Config{
		StoreType:    strings.ToLower(getEnv("STORE_TYPE", "sqlite")),
		DatabasePath: getEnv("DB_PATH", "./phonics.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		GdataAppName: getEnv("GDATA_APP", "phonics"),
		ProfileID:    getEnv("PROFILE_ID", DefaultProfileID),
	}
}

// Validate checks that the selected store has what it needs to open
func (c *Config) Validate() error {
	switch c.StoreType {
	case "sqlite", "sqlite3", "":
		if c.DatabasePath == "" {
			return fmt.Errorf("DB_PATH is required for sqlite")
		}
	case "postgres", "postgresql", "mysql":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for %s", c.StoreType)
		}
	case "gdata":
		if c.GdataAppName == "" {
			return fmt.Errorf("GDATA_APP is required for gdata")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported store type: %s", c.StoreType)
	}

	if c.ProfileID == "" {
		return fmt.Errorf("PROFILE_ID must not be empty")
	}
	return nil
}

// IsSQL reports whether the store is backed by a database/sql connection
func (c *Config) IsSQL() bool {
	switch c.StoreType {
	case "sqlite", "sqlite3", "", "postgres", "postgresql", "mysql":
		return true
	}
	return false
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
