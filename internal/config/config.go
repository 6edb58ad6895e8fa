package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	AppMode     string
	Port        string
	Database    DatabaseConfig
	Loan        LoanConfig
	UserService UserServiceConfig
	Notify      NotifyConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// LoanConfig holds the loan calculation settings
type LoanConfig struct {
	// AnnualInterestRate is the process-wide rate (percent) applied to
	// every loan. Loans are not individually rated.
	AnnualInterestRate decimal.Decimal
	// RecomputeOnUpdate controls whether the monthly amount is recomputed
	// when amount/duration change on update.
	RecomputeOnUpdate bool
}

// UserServiceConfig holds the ms-user directory client settings
type UserServiceConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NotifyConfig holds loan-created notification settings
type NotifyConfig struct {
	WebhookURL string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	loanCfg, err := loadLoanConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:     appMode,
		Port:        getEnv("PORT", "3000"),
		Database:    loadDatabaseConfig(appMode),
		Loan:        loanCfg,
		UserService: loadUserServiceConfig(),
		Notify:      NotifyConfig{WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", "")},
	}

	AppConfig = config

	log.Printf("configuration loaded [MODE: %s, RATE: %s%%]", appMode, config.Loan.AnnualInterestRate)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "ms_loan"),
	}
}

// loadLoanConfig loads and validates the loan calculation settings
func loadLoanConfig() (LoanConfig, error) {
	raw := getEnv("LOAN_ANNUAL_INTEREST_RATE", "18")
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return LoanConfig{}, fmt.Errorf("invalid LOAN_ANNUAL_INTEREST_RATE: '%s'", raw)
	}
	// A non-positive rate would degenerate the amortization formula.
	if rate.Sign() <= 0 {
		return LoanConfig{}, fmt.Errorf("LOAN_ANNUAL_INTEREST_RATE must be greater than zero, got '%s'", raw)
	}

	recompute, _ := strconv.ParseBool(getEnv("LOAN_RECOMPUTE_ON_UPDATE", "false"))

	return LoanConfig{
		AnnualInterestRate: rate,
		RecomputeOnUpdate:  recompute,
	}, nil
}

// loadUserServiceConfig loads the user directory client settings
func loadUserServiceConfig() UserServiceConfig {
	timeoutSecs, _ := strconv.Atoi(getEnv("USER_SERVICE_TIMEOUT_SECONDS", "10"))
	if timeoutSecs <= 0 {
		timeoutSecs = 10
	}

	return UserServiceConfig{
		BaseURL: getEnv("USER_SERVICE_URL", "http://localhost:8081"),
		Timeout: time.Duration(timeoutSecs) * time.Second,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
