// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"mybudget/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config

	// LockTimeout bounds the wait for an envelope lock. Zero keeps the server default.
	LockTimeout time.Duration
	AutoMigrate bool

	LogLevel  string
	LogFormat string

	// AMQP; an empty URL disables ledger events.
	AMQPURL      string
	AMQPExchange string
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first when one is present. Variables already set in the environment win.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	l := &loader{}
	cfg := &AppConfig{
		ServerPort: l.getString("PORT", "8080"),
		DB: db.Config{
			Host:            l.getString("PGHOST", "localhost"),
			Port:            l.getInt("PGPORT", 5432),
			User:            l.getString("PGUSER", "postgres"),
			Password:        l.getString("PGPASSWORD", ""),
			DBName:          l.getString("PGDATABASE", "mybudget"),
			SSLMode:         l.getString("PGSSLMODE", "disable"),
			MaxOpenConns:    l.getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    l.getInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: l.getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		LockTimeout:  l.getDuration("DB_LOCK_TIMEOUT", 0),
		AutoMigrate:  l.getBool("DB_AUTO_MIGRATE", true),
		LogLevel:     l.getString("LOG_LEVEL", "info"),
		LogFormat:    l.getString("LOG_FORMAT", "json"),
		AMQPURL:      l.getString("AMQP_URL", ""),
		AMQPExchange: l.getString("AMQP_EXCHANGE", "mybudget.ledger"),
	}

	problems := append(l.errors, cfg.problems()...)
	if len(problems) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return cfg, nil
}

// Validate reports every invalid setting in one error.
func (c *AppConfig) Validate() error {
	if problems := c.problems(); len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func (c *AppConfig) problems() []string {
	var errors []string

	if port, err := strconv.Atoi(c.ServerPort); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.ServerPort))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DB.Port < 1 || c.DB.Port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid PGPORT %d: must be between 1 and 65535", c.DB.Port))
	}
	if c.DB.Host == "" {
		errors = append(errors, "PGHOST cannot be empty")
	}
	if c.DB.DBName == "" {
		errors = append(errors, "PGDATABASE cannot be empty")
	}
	if c.DB.MaxOpenConns < 1 {
		errors = append(errors, fmt.Sprintf("invalid DB_MAX_OPEN_CONNS %d: must be at least 1", c.DB.MaxOpenConns))
	}
	if c.DB.MaxIdleConns < 0 {
		errors = append(errors, fmt.Sprintf("invalid DB_MAX_IDLE_CONNS %d: must not be negative", c.DB.MaxIdleConns))
	}
	if c.LockTimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid DB_LOCK_TIMEOUT %v: must not be negative", c.LockTimeout))
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be json or text", c.LogFormat))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	return errors
}

// loader reads typed environment values and remembers malformed ones.
type loader struct {
	errors []string
}

func (l *loader) getString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (l *loader) getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		l.errors = append(l.errors, fmt.Sprintf("invalid %s '%s': must be a number", key, value))
		return defaultValue
	}
	return i
}

func (l *loader) getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		l.errors = append(l.errors, fmt.Sprintf("invalid %s '%s': must be a duration such as 5s", key, value))
		return defaultValue
	}
	return d
}

func (l *loader) getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		l.errors = append(l.errors, fmt.Sprintf("invalid %s '%s': must be true or false", key, value))
		return defaultValue
	}
	return b
}
