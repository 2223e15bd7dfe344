package config

import (
	"os"
	"path/filepath"
	"strconv"

	"icuflow-mcp/internal/advisor"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Advisor advisor.Config

	DataPath string
	LogDir   string

	// CalibrationPath points at an optional YAML file layered over the
	// built-in calibration. Empty means built-in defaults only.
	CalibrationPath string

	// ForecastVolatility is the default daily perturbation spread used by
	// trend projections when the caller does not pass one.
	ForecastVolatility float64
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	cfg := &AppConfig{
		Advisor: advisor.Config{
			APIKey: getEnv("ANTHROPIC_API_KEY", ""),
			Model:  getEnv("ADVISOR_MODEL", ""),
		},
		DataPath:           dataPath,
		LogDir:             logDir,
		CalibrationPath:    getEnv("CALIBRATION_FILE", ""),
		ForecastVolatility: getEnvFloat("FORECAST_VOLATILITY", 0.05),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
			return f
		}
	}
	return fallback
}
