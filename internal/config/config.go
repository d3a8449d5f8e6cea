package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host string
	Port string

	// Database settings
	DatabasePath string

	// Logging settings
	LogLevel  string
	LogFormat string

	// Cache settings
	CacheSize int
	CacheTTL  time.Duration

	// Judicial backend settings
	DataJudBaseURL string
	DataJudAPIKey  string
	UserAgent      string

	// Dispatch settings
	DispatchTimeout time.Duration
	FanoutLimit     int
	FanoutTribunals []string
	DefaultTribunal string

	// Normalization settings
	MovementWindow int

	// Analytics settings
	DecisionHorizon time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not an error if .env doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "8080"),
		DatabasePath:    getEnv("DATABASE_PATH", "./data/processo_engine.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		DataJudBaseURL:  getEnv("DATAJUD_BASE_URL", "https://api-publica.datajud.cnj.jus.br"),
		DataJudAPIKey:   getEnv("DATAJUD_API_KEY", ""),
		UserAgent:       getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		DefaultTribunal: getEnv("DEFAULT_TRIBUNAL", "TJSP"),
	}

	cfg.FanoutTribunals = splitCSV(getEnv("FANOUT_TRIBUNALS", "TJSP,TJRJ,TJMG,TJRS,TJPR"))

	// Parse integer values
	var err error
	cfg.CacheSize, err = strconv.Atoi(getEnv("CACHE_SIZE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SIZE: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_HOURS: %w", err)
	}
	cfg.CacheTTL = time.Duration(cacheTTL) * time.Hour

	dispatchTimeout, err := strconv.Atoi(getEnv("DISPATCH_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISPATCH_TIMEOUT: %w", err)
	}
	cfg.DispatchTimeout = time.Duration(dispatchTimeout) * time.Second

	cfg.FanoutLimit, err = strconv.Atoi(getEnv("FANOUT_LIMIT", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid FANOUT_LIMIT: %w", err)
	}

	cfg.MovementWindow, err = strconv.Atoi(getEnv("MOVEMENT_WINDOW", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid MOVEMENT_WINDOW: %w", err)
	}

	horizonDays, err := strconv.Atoi(getEnv("DECISION_HORIZON_DAYS", "90"))
	if err != nil {
		return nil, fmt.Errorf("invalid DECISION_HORIZON_DAYS: %w", err)
	}
	cfg.DecisionHorizon = time.Duration(horizonDays) * 24 * time.Hour

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
