package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Runtime modes accepted in APP_ENV.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"
)

// Config holds application configuration
type Config struct {
	// Runtime mode: production, development or test
	Env string

	// Server
	Port string

	// Store
	DatabaseURL    string
	MigrationsPath string

	// Session
	SessionSecret string
	SessionTTL    time.Duration

	// Audit event publishing; disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Load reads configuration from the environment, loading a .env file first
// when one exists. It fails when a required value is missing or malformed and
// reports every problem at once.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function shaped like os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, defaultValue string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		Env:            get("APP_ENV", ""),
		Port:           get("PORT", "8080"),
		DatabaseURL:    get("DATABASE_URL", ""),
		MigrationsPath: get("MIGRATIONS_PATH", "file://migrations"),
		SessionSecret:  get("SESSION_SECRET", ""),
		AMQPURL:        get("AMQP_URL", ""),
		AMQPExchange:   get("AMQP_EXCHANGE", "expensebook"),
		AMQPQueue:      get("AMQP_QUEUE", "audit_events"),
	}

	var problems []string

	ttlStr := get("SESSION_TTL", "720h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		problems = append(problems, fmt.Sprintf("invalid SESSION_TTL %q: must be a positive duration", ttlStr))
	}
	cfg.SessionTTL = ttl

	problems = append(problems, cfg.validate()...)
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid environment variables:\n- %s", strings.Join(problems, "\n- "))
	}
	return cfg, nil
}

func (c *Config) validate() []string {
	var problems []string

	switch c.Env {
	case EnvProduction, EnvDevelopment, EnvTest:
	case "":
		problems = append(problems, "APP_ENV is required (production, development or test)")
	default:
		problems = append(problems, fmt.Sprintf("invalid APP_ENV %q: must be production, development or test", c.Env))
	}

	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required")
	} else if !strings.Contains(c.DatabaseURL, ":") {
		problems = append(problems, fmt.Sprintf("invalid DATABASE_URL %q: expected a URI", c.DatabaseURL))
	}

	if c.SessionSecret == "" {
		problems = append(problems, "SESSION_SECRET is required")
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid PORT %q: must be a number between 1 and 65535", c.Port))
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP_URL: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP_URL scheme %q: must be amqp or amqps", u.Scheme))
		}
	}

	return problems
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool { return c.Env == EnvDevelopment }
