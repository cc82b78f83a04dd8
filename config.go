package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"bookstore-service/database"
	aws_pkg "bookstore-service/pkg/aws"

	"github.com/joho/godotenv"
)

const dbSecretName = "bookstore/DB_CREDENTIALS"

// Config holds all configuration for the bookstore.
type Config struct {
	Port             string
	Env              string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string
	RedisURL         string
	SessionSecret    string
	SessionTTL       time.Duration
	SeedData         bool
	// Reject course list changes made by anyone but the owning professor
	EnforceCourseListOwnership bool
	// SNS topic for order and return events; empty disables publishing
	OrderEventsTopicARN string
	UseSecrets          bool
}

// LoadConfig reads configuration from the environment, a local .env file
// when present, and optionally Secrets Manager for the database credentials.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := configFromEnv()
	if err != nil {
		return nil, err
	}

	if cfg.UseSecrets {
		awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		secrets := aws_pkg.NewSecretStore(awsCfg)
		if err := cfg.applyDBSecret(func(name string) (map[string]string, error) {
			return secrets.Fields(context.Background(), name)
		}); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFromEnv() (*Config, error) {
	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL %q", os.Getenv("SESSION_TTL"))
	}

	return &Config{
		Port:                       getEnv("PORT", "8080"),
		Env:                        getEnv("ENV", "development"),
		PostgresUser:               os.Getenv("POSTGRES_USER"),
		PostgresPassword:           os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:                 os.Getenv("POSTGRES_DB"),
		PostgresHost:               os.Getenv("POSTGRES_HOST"),
		PostgresPort:               getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:            getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone:           getEnv("POSTGRES_TIMEZONE", "America/New_York"),
		RedisURL:                   getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionSecret:              os.Getenv("SESSION_SECRET"),
		SessionTTL:                 ttl,
		SeedData:                   getBool("SEED_DATA"),
		EnforceCourseListOwnership: getBool("ENFORCE_COURSE_LIST_OWNERSHIP"),
		OrderEventsTopicARN:        os.Getenv("ORDER_EVENTS_TOPIC_ARN"),
		UseSecrets:                 getBool("AWS_USE_SECRETS"),
	}, nil
}

// applyDBSecret overrides the Postgres settings with the non-empty values of
// the stored secret.
func (c *Config) applyDBSecret(fetch func(name string) (map[string]string, error)) error {
	m, err := fetch(dbSecretName)
	if err != nil {
		return fmt.Errorf("read %s: %w", dbSecretName, err)
	}
	for key, dst := range map[string]*string{
		"POSTGRES_USER":     &c.PostgresUser,
		"POSTGRES_PASSWORD": &c.PostgresPassword,
		"POSTGRES_DB":       &c.PostgresDB,
		"POSTGRES_HOST":     &c.PostgresHost,
		"POSTGRES_PORT":     &c.PostgresPort,
	} {
		if v, ok := m[key]; ok && v != "" {
			*dst = v
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.PostgresUser == "" || c.PostgresPassword == "" || c.PostgresDB == "" || c.PostgresHost == "" {
		return fmt.Errorf("database config incomplete")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	return nil
}

func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:     c.PostgresHost,
		Port:     c.PostgresPort,
		User:     c.PostgresUser,
		Password: c.PostgresPassword,
		DBName:   c.PostgresDB,
		SSLMode:  c.PostgresSSLMode,
		TimeZone: c.PostgresTimeZone,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
