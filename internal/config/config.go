package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	SMTP     SMTPConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	// Secret verifies HS256 access tokens issued by the auth provider.
	Secret      string
	SSETokenTTL time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Name        string
	Version     string
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
	// TimezoneOffsetMinutes is the shop's offset east of UTC, 420 for UTC+7.
	TimezoneOffsetMinutes int
}

// RedisConfig holds the payroll cache settings. An empty Addr disables the cache.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	SummaryTTL time.Duration
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// RabbitMQConfig holds the mail queue settings. An empty URL disables email.
type RabbitMQConfig struct {
	URL            string
	Queue          string
	PublishTimeout time.Duration
}

func (c RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	DialTimeout time.Duration
}

type CronConfig struct {
	ReminderInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	dbMaxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "mol_coffee"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}
	tzOffset, err := getEnvInt("APP_TZ_OFFSET_MINUTES", 420)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Name:                  getEnv("APP_NAME", "mol-backend"),
		Version:               getEnv("APP_VERSION", "dev"),
		Port:                  appPort,
		Env:                   getEnv("APP_ENV", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		FrontendURL:           getEnv("FRONTEND_URL", "http://localhost:5173"),
		TimezoneOffsetMinutes: tzOffset,
	}

	// JWT configuration
	sseTTL, err := getEnvDuration("JWT_SSE_TOKEN_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	config.JWT = JWTConfig{
		Secret:      getEnv("JWT_SECRET_KEY", ""),
		SSETokenTTL: sseTTL,
	}

	// Redis configuration
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	summaryTTL, err := getEnvDuration("REDIS_SUMMARY_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	config.Redis = RedisConfig{
		Addr:       getEnv("REDIS_ADDR", ""),
		Password:   getEnv("REDIS_PASSWORD", ""),
		DB:         redisDB,
		SummaryTTL: summaryTTL,
	}

	// RabbitMQ configuration
	publishTimeout, err := getEnvDuration("RABBITMQ_PUBLISH_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	config.RabbitMQ = RabbitMQConfig{
		URL:            getEnv("RABBITMQ_URL", ""),
		Queue:          getEnv("RABBITMQ_QUEUE", "email_queue"),
		PublishTimeout: publishTimeout,
	}

	// SMTP configuration
	smtpPort, err := getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	dialTimeout, err := getEnvDuration("SMTP_DIAL_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	config.SMTP = SMTPConfig{
		Host:        getEnv("SMTP_HOST", "localhost"),
		Port:        smtpPort,
		Username:    getEnv("SMTP_USERNAME", ""),
		Password:    getEnv("SMTP_PASSWORD", ""),
		From:        getEnv("SMTP_FROM", "MoL Coffee <no-reply@molcoffee.vn>"),
		DialTimeout: dialTimeout,
	}

	// Cron configuration
	reminderInterval, err := getEnvDuration("CRON_REMINDER_INTERVAL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	config.Cron = CronConfig{ReminderInterval: reminderInterval}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.App.TimezoneOffsetMinutes < -12*60 || c.App.TimezoneOffsetMinutes > 14*60 {
		return fmt.Errorf("APP_TZ_OFFSET_MINUTES must be between -720 and 840")
	}
	if c.Cron.ReminderInterval <= 0 {
		return fmt.Errorf("CRON_REMINDER_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// AllowedOrigins returns the CORS origins, FRONTEND_URL may be comma separated.
func (c *Config) AllowedOrigins() []string {
	return getEnvSlice("FRONTEND_URL", c.App.FrontendURL)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := getEnv(key, strconv.Itoa(fallback))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, fallback.String())
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
