package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Storage struct {
		DataDir string `yaml:"data_dir" env:"STORAGE_DATA_DIR"`
	} `yaml:"storage"`

	Mirror struct {
		Driver string `yaml:"driver" env:"MIRROR_DRIVER"`

		GitHub struct {
			Token   string `yaml:"token" env:"GITHUB_TOKEN"`
			Owner   string `yaml:"repo_owner" env:"GITHUB_REPO_OWNER"`
			Repo    string `yaml:"repo_name" env:"GITHUB_REPO_NAME"`
			Branch  string `yaml:"branch" env:"GITHUB_BRANCH"`
			APIBase string `yaml:"api_base" env:"GITHUB_API_BASE"`
			Timeout string `yaml:"timeout" env:"GITHUB_TIMEOUT"`
		} `yaml:"github"`

		S3 struct {
			Region          string `yaml:"region" env:"S3_REGION"`
			Bucket          string `yaml:"bucket" env:"S3_BUCKET"`
			Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
			AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID"`
			SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
			PathStyle       bool   `yaml:"path_style" env:"S3_PATH_STYLE"`
			Prefix          string `yaml:"prefix" env:"S3_PREFIX"`
		} `yaml:"s3"`
	} `yaml:"mirror"`

	Admin struct {
		Secret string `yaml:"secret" env:"ADMIN_SECRET"`
	} `yaml:"admin"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Storage defaults
	config.Storage.DataDir = "data"

	// Mirror defaults. The github driver silently degrades to a disabled
	// mirror when token/owner/repo are not all present, so "github" is a
	// safe default for purely local deployments.
	config.Mirror.Driver = "github"
	config.Mirror.GitHub.Branch = "main"
	config.Mirror.GitHub.APIBase = "https://api.github.com"
	config.Mirror.GitHub.Timeout = "10s"
	config.Mirror.S3.Region = "us-east-1"

	// JWT defaults
	config.JWT.Secret = "refbase-dev-secret"
	config.JWT.AccessTokenExpiration = "12h"
	config.JWT.Issuer = "refbase.app"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Storage.DataDir == "" {
		return fmt.Errorf("storage data dir is required")
	}

	switch strings.ToLower(config.Mirror.Driver) {
	case "", "none", "github", "s3", "memory":
	default:
		return fmt.Errorf("unknown mirror driver %q", config.Mirror.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if config.Mirror.GitHub.Timeout != "" {
		if _, err := time.ParseDuration(config.Mirror.GitHub.Timeout); err != nil {
			return fmt.Errorf("invalid mirror timeout format: %w", err)
		}
	}

	return nil
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	valueLower := strings.ToLower(valueStr)
	if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
		return true
	}
	if valueLower == "false" || valueLower == "0" || valueLower == "no" {
		return false
	}

	return defaultValue
}

// GetEnvAsDuration gets an environment variable as a duration or returns a default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
