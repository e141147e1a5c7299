package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conversion backends selectable with CONVERSION_BACKEND.
const (
	ConversionBackendRates = "rates" // stored exchange rates
	ConversionBackendHTTP  = "http"  // remote conversion service
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	JWTSecret          string
	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	MigrationsPath     string
	DBMaxConns         int32

	ConversionBackend    string
	ConversionServiceURL string
	ConversionTimeout    time.Duration
	TotalsMemoTTL        time.Duration
	CollectionIdleTTL    time.Duration

	PosthogAPIKey      string
	TelemetryAMQPURL   string
	TelemetryAMQPQueue string
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("CONVERSION_BACKEND", ConversionBackendRates)
	viper.SetDefault("CONVERSION_SERVICE_URL", "")
	viper.SetDefault("CONVERSION_TIMEOUT", "10s")
	viper.SetDefault("TOTALS_MEMO_TTL", "5m")
	viper.SetDefault("COLLECTION_IDLE_TTL", "1h")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("TELEMETRY_AMQP_URL", "")
	viper.SetDefault("TELEMETRY_AMQP_QUEUE", "budget.conversion.failures")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")

	cfg.ConversionBackend = strings.ToLower(strings.TrimSpace(viper.GetString("CONVERSION_BACKEND")))
	cfg.ConversionServiceURL = strings.TrimRight(viper.GetString("CONVERSION_SERVICE_URL"), "/")
	cfg.ConversionTimeout = parseDuration("CONVERSION_TIMEOUT", 10*time.Second)
	cfg.TotalsMemoTTL = parseDuration("TOTALS_MEMO_TTL", 5*time.Minute)
	cfg.CollectionIdleTTL = parseDuration("COLLECTION_IDLE_TTL", time.Hour)

	switch cfg.ConversionBackend {
	case ConversionBackendRates:
	case ConversionBackendHTTP:
		if cfg.ConversionServiceURL == "" {
			return nil, fmt.Errorf("CONVERSION_SERVICE_URL is required when CONVERSION_BACKEND is '%s'", ConversionBackendHTTP)
		}
	default:
		return nil, fmt.Errorf("unknown CONVERSION_BACKEND '%s'", cfg.ConversionBackend)
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.TelemetryAMQPURL = viper.GetString("TELEMETRY_AMQP_URL")
	cfg.TelemetryAMQPQueue = viper.GetString("TELEMETRY_AMQP_QUEUE")

	return cfg, nil
}
