package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDBEnv(t *testing.T) {
	t.Setenv("POSTGRES_USER", "bookstore")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "bookstore")
	t.Setenv("POSTGRES_HOST", "localhost")
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	setDBEnv(t)
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := configFromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.validate())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.SeedData)
	assert.False(t, cfg.EnforceCourseListOwnership)
	assert.Empty(t, cfg.OrderEventsTopicARN)
	assert.Equal(t, "localhost", cfg.Postgres().Host)
}

func TestConfigFromEnv_Flags(t *testing.T) {
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("SEED_DATA", "true")
	t.Setenv("ENFORCE_COURSE_LIST_OWNERSHIP", "1")

	cfg, err := configFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.SeedData)
	assert.True(t, cfg.EnforceCourseListOwnership)
}

func TestConfigFromEnv_BadTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")

	_, err := configFromEnv()
	assert.Error(t, err)
}

func TestValidate_RequiresSessionSecret(t *testing.T) {
	setDBEnv(t)
	t.Setenv("SESSION_SECRET", "")

	cfg, err := configFromEnv()
	require.NoError(t, err)
	assert.EqualError(t, cfg.validate(), "SESSION_SECRET is required")
}

func TestApplyDBSecret(t *testing.T) {
	cfg := &Config{PostgresUser: "env-user", PostgresHost: "env-host", PostgresPort: "5432"}

	err := cfg.applyDBSecret(func(name string) (map[string]string, error) {
		assert.Equal(t, dbSecretName, name)
		return map[string]string{"POSTGRES_USER": "vault-user", "POSTGRES_PASSWORD": "vault-pass", "POSTGRES_HOST": ""}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "vault-user", cfg.PostgresUser)
	assert.Equal(t, "vault-pass", cfg.PostgresPassword)
	assert.Equal(t, "env-host", cfg.PostgresHost)

	err = cfg.applyDBSecret(func(string) (map[string]string, error) { return nil, errors.New("denied") })
	assert.Error(t, err)
}
