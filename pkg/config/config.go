package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultDataSource is the documented default location of the analytics
// document, resolved relative to the server working directory.
const DefaultDataSource = "grade_analysis_data.json"

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Dashboard data source: a local path or an http(s) URL.
	DataSource string

	// Analysis inputs and outputs
	GradesFile   string
	CodebookFile string
	OutputDir    string

	// A score below this threshold counts as a failed assessment.
	PassingThreshold float64

	// StrictSchema enables shape validation of the analytics document.
	StrictSchema bool

	// Logging
	LogLevel  string
	LogFormat string

	// Rate limiting for the dashboard server
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DataSource: getEnv("DATA_SOURCE", DefaultDataSource),

		GradesFile:   getEnv("GRADES_FILE", "gradesMachineReadable.csv"),
		CodebookFile: getEnv("CODEBOOK_FILE", "codebookMachineReadable.csv"),
		OutputDir:    getEnv("OUTPUT_DIR", "."),

		PassingThreshold: getEnvAsFloat("PASSING_THRESHOLD", 60),

		StrictSchema: getEnvAsBool("STRICT_SCHEMA", false),

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 40),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.DataSource == "" {
		return fmt.Errorf("DATA_SOURCE must not be empty")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.PassingThreshold < 0 || c.PassingThreshold > 100 {
		return fmt.Errorf("PASSING_THRESHOLD must be within 0..100, got %.2f", c.PassingThreshold)
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
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
