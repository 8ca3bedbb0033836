package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values.
type Config struct {
	Analysis AnalysisConfig
	Logging  LoggingConfig
}

// AnalysisConfig locates the inputs and output directories for a run.
type AnalysisConfig struct {
	UsersFile         string
	RegistrationsFile string
	ResultsDir        string
	ChartsDir         string
	TrendCutoffYear   int
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultUsersFile         = "exports/allUsers.json"
	defaultRegistrationsFile = "userData.csv"
	defaultResultsDir        = "resultados"
	defaultChartsDir         = "graficas"
	defaultTrendCutoffYear   = 2023
	defaultLoggingLevel      = "info"
	defaultLoggingFormat     = "text"
)

// Load reads configuration from the environment, applying defaults. A .env
// file in the working directory is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Analysis: AnalysisConfig{
			UsersFile:         valueOrDefault("ANALYSIS_USERS_FILE", defaultUsersFile),
			RegistrationsFile: valueOrDefault("ANALYSIS_REGISTRATIONS_FILE", defaultRegistrationsFile),
			ResultsDir:        valueOrDefault("ANALYSIS_RESULTS_DIR", defaultResultsDir),
			ChartsDir:         valueOrDefault("ANALYSIS_CHARTS_DIR", defaultChartsDir),
			TrendCutoffYear:   defaultTrendCutoffYear,
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	if v := os.Getenv("ANALYSIS_TREND_CUTOFF_YEAR"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ANALYSIS_TREND_CUTOFF_YEAR value %q: %w", v, err)
		}
		cfg.Analysis.TrendCutoffYear = year
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}
