// Package config builds service configuration from the environment so main
// stays lean. Infra URLs are optional: anything unset degrades to the
// in-process implementation (memory stores, log publisher).
package config

import (
	"os"
	"strings"
	"time"

	stringsutil "studentregistry/pkg/platform/strings"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr string

	// PostgresURL enables the durable stores when set.
	PostgresURL string
	// RedisURL enables the name lookup cache when set.
	RedisURL string
	// KafkaBrokers enables the broker event publisher when non-empty.
	KafkaBrokers []string
	// EventsTopic overrides the default events topic.
	EventsTopic string

	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration

	// ProvisioningSecretHash is the bcrypt hash the token endpoint checks
	// exchanges against.
	ProvisioningSecretHash string

	// DeployerPrincipal claims the owner slot on first boot.
	DeployerPrincipal string

	CacheTTL time.Duration
}

// FromEnv reads configuration from environment variables, applying dev
// defaults where it is safe to.
func FromEnv() Config {
	cfg := Config{
		Addr:                   envOr("REGISTRY_ADDR", ":8080"),
		PostgresURL:            os.Getenv("REGISTRY_POSTGRES_URL"),
		RedisURL:               os.Getenv("REGISTRY_REDIS_URL"),
		EventsTopic:            os.Getenv("REGISTRY_EVENTS_TOPIC"),
		JWTSigningKey:          envOr("REGISTRY_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:              envOr("REGISTRY_JWT_ISSUER", "studentregistry"),
		JWTAudience:            envOr("REGISTRY_JWT_AUDIENCE", "studentregistry"),
		ProvisioningSecretHash: os.Getenv("REGISTRY_PROVISIONING_SECRET_HASH"),
		DeployerPrincipal:      envOr("REGISTRY_DEPLOYER", "deployer"),
		TokenTTL:               durationOr("REGISTRY_TOKEN_TTL", time.Hour),
		CacheTTL:               durationOr("REGISTRY_CACHE_TTL", 5*time.Minute),
	}
	if brokers := os.Getenv("REGISTRY_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = stringsutil.DedupeAndTrim(strings.Split(brokers, ","))
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
