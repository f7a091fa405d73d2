package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Stock      StockConfig
	Enrichment EnrichmentConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// StockConfig points at the downstream stock services.
// Path templates carry a {companyCode} placeholder.
type StockConfig struct {
	QueryBaseURL   string
	PricePath      string
	CommandBaseURL string
	DeletePath     string
	Timeout        time.Duration
}

type EnrichmentConfig struct {
	Concurrency int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "estock_company"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Downstream stock services
	stockTimeout, err := time.ParseDuration(getEnv("STOCK_CLIENT_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STOCK_CLIENT_TIMEOUT: %w", err)
	}

	config.Stock = StockConfig{
		QueryBaseURL:   getEnv("STOCK_QUERY_BASE_URL", "http://stock-query-service:8091"),
		PricePath:      getEnv("STOCK_PRICE_PATH", "/api/v1.0/market/stock/get/{companyCode}"),
		CommandBaseURL: getEnv("STOCK_COMMAND_BASE_URL", "http://stock-command-service:8090"),
		DeletePath:     getEnv("STOCK_DELETE_PATH", "/api/v1.0/market/stock/delete/{companyCode}"),
		Timeout:        stockTimeout,
	}

	concurrency, err := strconv.Atoi(getEnv("ENRICHMENT_CONCURRENCY", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENRICHMENT_CONCURRENCY: %w", err)
	}
	config.Enrichment = EnrichmentConfig{Concurrency: concurrency}

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
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Stock.QueryBaseURL == "" || c.Stock.CommandBaseURL == "" {
		return fmt.Errorf("STOCK_QUERY_BASE_URL and STOCK_COMMAND_BASE_URL are required")
	}
	if !strings.Contains(c.Stock.PricePath, "{companyCode}") {
		return fmt.Errorf("STOCK_PRICE_PATH must contain {companyCode}")
	}
	if !strings.Contains(c.Stock.DeletePath, "{companyCode}") {
		return fmt.Errorf("STOCK_DELETE_PATH must contain {companyCode}")
	}
	if c.Stock.Timeout <= 0 {
		return fmt.Errorf("STOCK_CLIENT_TIMEOUT must be positive")
	}
	if c.Enrichment.Concurrency < 1 {
		return fmt.Errorf("ENRICHMENT_CONCURRENCY must be at least 1")
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

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
