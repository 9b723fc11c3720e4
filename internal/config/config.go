package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv           string
	Port             string
	LogLevel         string
	LogFormat        string
	SummarizerURL    string
	RefreshInterval  time.Duration
	MetricsInterval  time.Duration
	ActivityInterval time.Duration
	MaxClients       int
	SubmissionRate   float64
	SubmissionBurst  int
}

func Load() (*Config, error) {
	refresh, err := getDuration("REFRESH_INTERVAL", 3*time.Minute)
	if err != nil {
		return nil, err
	}
	metrics, err := getDuration("METRICS_INTERVAL", 1*time.Minute)
	if err != nil {
		return nil, err
	}
	activity, err := getDuration("ACTIVITY_INTERVAL", 45*time.Second)
	if err != nil {
		return nil, err
	}
	maxClients, err := getInt("MAX_CLIENTS", 512)
	if err != nil {
		return nil, err
	}
	submissionRate, err := getFloat("SUBMISSION_RATE", 1)
	if err != nil {
		return nil, err
	}
	submissionBurst, err := getInt("SUBMISSION_BURST", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		SummarizerURL:    getEnv("SUMMARIZER_URL", ""),
		RefreshInterval:  refresh,
		MetricsInterval:  metrics,
		ActivityInterval: activity,
		MaxClients:       maxClients,
		SubmissionRate:   submissionRate,
		SubmissionBurst:  submissionBurst,
	}

	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("REFRESH_INTERVAL must be positive")
	}
	if cfg.MetricsInterval <= 0 {
		return nil, fmt.Errorf("METRICS_INTERVAL must be positive")
	}
	if cfg.ActivityInterval <= 0 {
		return nil, fmt.Errorf("ACTIVITY_INTERVAL must be positive")
	}
	if cfg.MaxClients <= 0 {
		return nil, fmt.Errorf("MAX_CLIENTS must be positive")
	}
	if cfg.SubmissionRate <= 0 {
		return nil, fmt.Errorf("SUBMISSION_RATE must be positive")
	}
	if cfg.SubmissionBurst <= 0 {
		return nil, fmt.Errorf("SUBMISSION_BURST must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}
