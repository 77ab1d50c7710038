package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE", "SEED_MEMBERS", "OVERDUE_GRACE_DAYS", "RECONCILE_INTERVAL", "RECONCILE_ON_START", "DB_HOST"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 30, cfg.OverdueGraceDays)
	assert.Equal(t, 24*time.Hour, cfg.ReconcileInterval)
	assert.False(t, cfg.ReconcileOnStart)
	assert.Empty(t, cfg.SeedMembers)
	assert.Equal(t, "localhost", cfg.DB.Host)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORAGE", StorageMemory)
	t.Setenv("SEED_MEMBERS", " U1, ,U2 ")
	t.Setenv("OVERDUE_GRACE_DAYS", "7")
	t.Setenv("RECONCILE_INTERVAL", "15m")
	t.Setenv("RECONCILE_ON_START", "true")

	cfg := FromEnv()

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, []string{"U1", "U2"}, cfg.SeedMembers)
	assert.Equal(t, 7, cfg.OverdueGraceDays)
	assert.Equal(t, 15*time.Minute, cfg.ReconcileInterval)
	assert.True(t, cfg.ReconcileOnStart)
}

func TestFromEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("OVERDUE_GRACE_DAYS", "-3")
	t.Setenv("RECONCILE_INTERVAL", "often")

	cfg := FromEnv()

	assert.Equal(t, 30, cfg.OverdueGraceDays)
	assert.Equal(t, 24*time.Hour, cfg.ReconcileInterval)
}

func TestDatabaseDSN(t *testing.T) {
	db := Database{Host: "db", Port: "5432", User: "league", Password: "secret", Name: "volley", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=league password=secret dbname=volley sslmode=disable", db.DSN())
}
