package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storage backend selection
	Storage StorageConfig

	// Database configuration (relational drivers only)
	Database DatabaseConfig

	// JWT configuration
	JWT JWTConfig

	// Email configuration
	Email EmailConfig

	// CORS configuration
	CORS CORSConfig

	// Redis course cache
	Redis RedisConfig

	// Kafka domain events
	Kafka KafkaConfig

	// Auth endpoint rate limiting
	RateLimit RateLimitConfig

	// Logging
	Log LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Driver   string
	Seed     bool
	SeedFile string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	SQLitePath   string
	MaxConns     int32
	MinConns     int32
	MaxLifetime  time.Duration
	ConnTimeout  time.Duration
	QueryTimeout time.Duration
	ConnRetries  int
	RetryDelay   time.Duration
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
	// RequireToken makes a bearer token mandatory on user-scoped endpoints
	RequireToken bool
}

// EmailConfig holds email service configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	// AdminEmail receives contact form notifications
	AdminEmail string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// RedisConfig holds the course cache configuration; empty Addr disables it
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// KafkaConfig holds event publishing configuration; no brokers disables it
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RateLimitConfig limits login/register attempts per client IP
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// LogConfig controls zerolog output
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file
	if err := godotenv.Load("../.env"); err != nil {
		// Try loading from current directory if not found in parent
		if err := godotenv.Load(".env"); err != nil {
			log.Warn().Err(err).Msg(".env file not found, using process environment")
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
			Seed:     getBoolEnv("STORAGE_SEED", true),
			SeedFile: getEnv("STORAGE_SEED_FILE", ""),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "coursehub"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			SQLitePath:   getEnv("DB_SQLITE_PATH", "file:coursehub.db?cache=shared&mode=rwc"),
			MaxConns:     getInt32Env("DB_MAX_CONNS", 5),
			MinConns:     getInt32Env("DB_MIN_CONNS", 0),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", time.Hour),
			ConnTimeout:  getDurationEnv("DB_CONN_TIMEOUT", 10*time.Second),
			QueryTimeout: getDurationEnv("DB_QUERY_TIMEOUT", 30*time.Second),
			ConnRetries:  getIntEnv("DB_CONN_RETRIES", 10),
			RetryDelay:   getDurationEnv("DB_RETRY_DELAY", 3*time.Second),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL: getDurationEnv("JWT_ACCESS_TTL", 7*24*time.Hour), // 7 days
			RequireToken:   getBoolEnv("JWT_REQUIRE_TOKEN", false),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("EMAIL_FROM", ""),
			FromName:     getEnv("EMAIL_FROM_NAME", "CourseHub Team"),
			AdminEmail:   getEnv("EMAIL_ADMIN", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getStringSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders:   getStringSliceEnv("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			TTL:      getDurationEnv("REDIS_COURSE_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: getStringSliceEnv("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "course-registrations"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getFloatEnv("AUTH_RATE_LIMIT_RPS", 1),
			Burst:             getIntEnv("AUTH_RATE_LIMIT_BURST", 5),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getBoolEnv("LOG_PRETTY", false),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres, DriverMySQL:
		// Check required database configuration
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for STORAGE_DRIVER=%s", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of memory, postgres, sqlite, mysql (got %q)", c.Storage.Driver)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT_RPS and AUTH_RATE_LIMIT_BURST must be positive")
	}

	if !c.IsEmailConfigured() {
		log.Warn().Msg("SMTP credentials not configured, confirmation emails are disabled")
	} else {
		log.Info().Str("smtp_host", c.Email.SMTPHost).Str("smtp_port", c.Email.SMTPPort).Msg("email configuration loaded")
	}

	return nil
}

// PostgresDSN returns the PostgreSQL connection string
func (c DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=%d",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		c.SSLMode,
		int(c.ConnTimeout.Seconds()),
	)
}

// MySQLDSN returns the go-sql-driver/mysql connection string
func (c DatabaseConfig) MySQLDSN() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, c.Port)
	mc.DBName = c.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Timeout = c.ConnTimeout
	return mc.FormatDSN()
}

// IsEmailConfigured checks if email service is properly configured
func (c *Config) IsEmailConfigured() bool {
	return c.Email.SMTPUsername != "" && c.Email.SMTPPassword != ""
}

// IsCacheConfigured reports whether the Redis course cache is enabled
func (c *Config) IsCacheConfigured() bool {
	return c.Redis.Addr != ""
}

// IsKafkaConfigured reports whether registration events go to Kafka
func (c *Config) IsKafkaConfigured() bool {
	return len(c.Kafka.Brokers) > 0
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt32Env(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intValue)
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}
