package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/RaiAraujo30/Complete-Physical-Store/database"
	awspkg "github.com/RaiAraujo30/Complete-Physical-Store/pkg/aws"
	"github.com/RaiAraujo30/Complete-Physical-Store/services"
)

const (
	secretDBCredentials = "physical-store/DB_CREDENTIALS"
	secretAPIKeys       = "physical-store/API_KEYS"
)

// Config holds all configuration for the physical store service.
type Config struct {
	Port   string
	AppEnv string

	MongoURI string
	MongoDB  string
	Postgres database.PostgresConfig
	RedisURL string

	GoogleMapsAPIKey  string
	GoogleMapsBaseURL string
	OpenCageAPIKey    string
	OpenCageBaseURL   string
	CorreiosURL       string
	ProviderTimeout   time.Duration

	CacheTTL              time.Duration
	LocalDeliveryRadiusKm float64
	RateLimitPerMinute    int
	RequestTimeout        time.Duration

	UseAWSSecrets     bool
	CloudWatchEnabled bool
}

// ConfigError describes one invalid or missing setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

type secretSource interface {
	GetSecretMap(ctx context.Context, name string) (map[string]string, error)
}

// LoadConfig reads configuration from environment variables, applies the
// Secrets Manager override when AWS_USE_SECRETS is "true" and validates the result.
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg, errs := fromEnv(os.Getenv)

	if cfg.UseAWSSecrets {
		awsCfg, err := awspkg.LoadAWSConfig(ctx)
		if err != nil {
			return nil, err
		}
		applySecrets(ctx, cfg, awspkg.NewSecretsClient(awsCfg))
	}

	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func fromEnv(getenv func(string) string) (*Config, []error) {
	env := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	var errs []error
	duration := func(key string, fallback time.Duration) time.Duration {
		raw := getenv(key)
		if raw == "" {
			return fallback
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			errs = append(errs, &ConfigError{Field: key, Message: fmt.Sprintf("invalid duration %q", raw)})
			return fallback
		}
		return d
	}

	cfg := &Config{
		Port:     env("PORT", "3000"),
		AppEnv:   env("APP_ENV", "development"),
		MongoURI: getenv("MONGO_URI"),
		MongoDB:  env("MONGO_DB", "physical_store"),
		Postgres: database.PostgresConfig{
			Host:     getenv("POSTGRES_HOST"),
			Port:     env("POSTGRES_PORT", "5432"),
			User:     getenv("POSTGRES_USER"),
			Password: getenv("POSTGRES_PASSWORD"),
			DBName:   getenv("POSTGRES_DB"),
			SSLMode:  env("POSTGRES_SSLMODE", "disable"),
			TimeZone: env("POSTGRES_TIMEZONE", "America/Sao_Paulo"),
		},
		RedisURL:          getenv("REDIS_URL"),
		GoogleMapsAPIKey:  getenv("GOOGLE_MAPS_API_KEY"),
		GoogleMapsBaseURL: getenv("GOOGLE_MAPS_BASE_URL"),
		OpenCageAPIKey:    getenv("OPENCAGE_API_KEY"),
		OpenCageBaseURL:   getenv("OPENCAGE_BASE_URL"),
		CorreiosURL:       getenv("CORREIOS_URL"),
		ProviderTimeout:   duration("PROVIDER_TIMEOUT", 15*time.Second),
		CacheTTL:          duration("CACHE_TTL", 24*time.Hour),
		RequestTimeout:    duration("REQUEST_TIMEOUT", 30*time.Second),
		UseAWSSecrets:     getenv("AWS_USE_SECRETS") == "true",
		CloudWatchEnabled: getenv("CLOUDWATCH_ENABLED") == "true",

		LocalDeliveryRadiusKm: services.DefaultLocalDeliveryRadiusKm,
		RateLimitPerMinute:    100,
	}

	if raw := getenv("LOCAL_DELIVERY_RADIUS_KM"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			errs = append(errs, &ConfigError{Field: "LOCAL_DELIVERY_RADIUS_KM", Message: fmt.Sprintf("must be a positive number, got %q", raw)})
		} else {
			cfg.LocalDeliveryRadiusKm = v
		}
	}
	if raw := getenv("RATE_LIMIT_PER_MINUTE"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			errs = append(errs, &ConfigError{Field: "RATE_LIMIT_PER_MINUTE", Message: fmt.Sprintf("must be a positive integer, got %q", raw)})
		} else {
			cfg.RateLimitPerMinute = v
		}
	}
	return cfg, errs
}

// applySecrets overrides credentials with values found in Secrets Manager.
// Missing secrets or keys leave the environment values in place.
func applySecrets(ctx context.Context, cfg *Config, sm secretSource) {
	if db, err := sm.GetSecretMap(ctx, secretDBCredentials); err == nil {
		override(&cfg.MongoURI, db["MONGO_URI"])
		override(&cfg.Postgres.User, db["POSTGRES_USER"])
		override(&cfg.Postgres.Password, db["POSTGRES_PASSWORD"])
		override(&cfg.Postgres.DBName, db["POSTGRES_DB"])
		override(&cfg.Postgres.Host, db["POSTGRES_HOST"])
		override(&cfg.Postgres.Port, db["POSTGRES_PORT"])
	}
	if keys, err := sm.GetSecretMap(ctx, secretAPIKeys); err == nil {
		override(&cfg.GoogleMapsAPIKey, keys["GOOGLE_MAPS_API_KEY"])
		override(&cfg.OpenCageAPIKey, keys["OPENCAGE_API_KEY"])
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (c *Config) validate() []error {
	var errs []error
	required := []struct {
		field, value string
	}{
		{"MONGO_URI", c.MongoURI},
		{"POSTGRES_HOST", c.Postgres.Host},
		{"POSTGRES_USER", c.Postgres.User},
		{"POSTGRES_PASSWORD", c.Postgres.Password},
		{"POSTGRES_DB", c.Postgres.DBName},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, &ConfigError{Field: r.field, Message: "is required"})
		}
	}
	return errs
}
