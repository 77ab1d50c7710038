// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config captures server, database and reconciliation settings.
type Config struct {
	Port    string
	Storage string
	DB      Database

	// SeedMembers are member ids preloaded into the in-memory directory
	SeedMembers []string

	OverdueGraceDays  int
	ReconcileInterval time.Duration
	ReconcileOnStart  bool

	LogLevel        string
	NewRelicAppName string
	NewRelicLicense string
}

// Database holds Postgres connection settings.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the lib/pq connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Load reads an optional .env file and then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		Storage: getEnvOrDefault("STORAGE", StoragePostgres),
		DB: Database{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			Name:     getEnvOrDefault("DB_NAME", "volleyleague"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		SeedMembers:       splitList(os.Getenv("SEED_MEMBERS")),
		OverdueGraceDays:  getIntOrDefault("OVERDUE_GRACE_DAYS", 30),
		ReconcileInterval: getDurationOrDefault("RECONCILE_INTERVAL", 24*time.Hour),
		ReconcileOnStart:  getEnvOrDefault("RECONCILE_ON_START", "false") == "true",
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		NewRelicAppName:   getEnvOrDefault("NEW_RELIC_APP_NAME", "Volleyball League API"),
		NewRelicLicense:   os.Getenv("NEW_RELIC_LICENSE_KEY"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		slog.Warn("Invalid integer setting, using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		slog.Warn("Invalid duration setting, using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
