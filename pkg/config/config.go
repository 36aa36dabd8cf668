package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis (optional cache backend)
	Redis RedisConfig

	// External APIs
	DART       DARTConfig
	DataPortal DataPortalConfig
	Naver      NaverConfig

	// Sync jobs
	Sync SyncConfig

	// Logging
	LogLevel  string
	LogFormat string

	// CORS origin allowed for the SPA
	AllowedOrigin string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DARTConfig holds OpenDART (전자공시) API configuration
type DARTConfig struct {
	APIKey     string
	BaseURL    string
	ReportCode string // 11011 = 사업보고서
	FsDiv      string // CFS = 연결, OFS = 별도
}

// DataPortalConfig holds 공공데이터포털 (data.go.kr) configuration
type DataPortalConfig struct {
	ServiceKey string
	BaseURL    string
	PageSize   int
}

// NaverConfig holds Naver Finance configuration
type NaverConfig struct {
	BaseURL string
}

// SyncConfig holds sequential sync loop settings
type SyncConfig struct {
	// Delay between entities, keeps us under the external API rate ceiling
	Delay time.Duration
	// FiscalYearLag is subtracted from the current year to pick a finalized filing
	FiscalYearLag int
	// HistoryMonths is the price window fetched by fetch-month-history
	HistoryMonths int
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		DART: DARTConfig{
			APIKey:     getEnv("DART_API_KEY", ""),
			BaseURL:    getEnv("DART_BASE_URL", "https://opendart.fss.or.kr"),
			ReportCode: getEnv("DART_REPORT_CODE", "11011"),
			FsDiv:      getEnv("DART_FS_DIV", "CFS"),
		},

		DataPortal: DataPortalConfig{
			ServiceKey: getEnv("DATA_PORTAL_SERVICE_KEY", ""),
			BaseURL:    getEnv("DATA_PORTAL_BASE_URL", "https://apis.data.go.kr/1160100/service/GetStockSecuritiesInfoService"),
			PageSize:   getEnvAsInt("DATA_PORTAL_PAGE_SIZE", 100),
		},

		Naver: NaverConfig{
			BaseURL: getEnv("NAVER_BASE_URL", "https://finance.naver.com"),
		},

		Sync: SyncConfig{
			Delay:         getEnvAsDuration("SYNC_DELAY", "500ms"),
			FiscalYearLag: getEnvAsInt("SYNC_FISCAL_YEAR_LAG", 2),
			HistoryMonths: getEnvAsInt("SYNC_HISTORY_MONTHS", 1),
		},

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Sync.FiscalYearLag < 0 {
		return fmt.Errorf("SYNC_FISCAL_YEAR_LAG must not be negative")
	}

	return nil
}

// RequireDART fails when the OpenDART key is missing (sync-financials precondition)
func (c *Config) RequireDART() error {
	if c.DART.APIKey == "" {
		return fmt.Errorf("DART_API_KEY is required")
	}
	return nil
}

// RequireDataPortal fails when the data.go.kr service key is missing
func (c *Config) RequireDataPortal() error {
	if c.DataPortal.ServiceKey == "" {
		return fmt.Errorf("DATA_PORTAL_SERVICE_KEY is required")
	}
	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
