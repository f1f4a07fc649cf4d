package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	DatabasePath     string   `toml:"database_path"`
	BaseURL          string   `toml:"base_url"`
	Port             string   `toml:"port"`
	SessionSecret    string   `toml:"session_secret"`
	OIDCIssuer       string   `toml:"oidc_issuer"`
	OIDCClientID     string   `toml:"oidc_client_id"`
	OIDCClientSecret string   `toml:"oidc_client_secret"`
	OIDCRedirectURL  string   `toml:"oidc_redirect_url"`
	LogLevel         string   `toml:"log_level"`
	LogFormat        string   `toml:"log_format"`
	LogFile          string   `toml:"log_file"`
	Timezone         string   `toml:"timezone"`
	UploadDir        string   `toml:"upload_dir"`
	S3               S3Config `toml:"s3"`
}

type S3Config struct {
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	PublicURL string `toml:"public_url"`
}

// Load builds the configuration from an optional TOML file named by CONFIG_FILE,
// then applies environment overrides.
func Load() (Config, error) {
	var config Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fileConfig, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}
		config = fileConfig
	}

	config.DatabasePath = envOrDefault("DATABASE_PATH", orDefault(config.DatabasePath, "./data/habit-hub.db"))
	config.BaseURL = envOrDefault("BASE_URL", config.BaseURL)
	config.Port = envOrDefault("PORT", orDefault(config.Port, "8080"))
	config.SessionSecret = envOrDefault("SESSION_SECRET", config.SessionSecret)
	config.OIDCIssuer = envOrDefault("OIDC_ISSUER", config.OIDCIssuer)
	config.OIDCClientID = envOrDefault("OIDC_CLIENT_ID", config.OIDCClientID)
	config.OIDCClientSecret = envOrDefault("OIDC_CLIENT_SECRET", config.OIDCClientSecret)
	config.OIDCRedirectURL = envOrDefault("OIDC_REDIRECT_URL", config.OIDCRedirectURL)
	config.LogLevel = envOrDefault("LOG_LEVEL", orDefault(config.LogLevel, "info"))
	config.LogFormat = envOrDefault("LOG_FORMAT", orDefault(config.LogFormat, "text"))
	config.LogFile = envOrDefault("LOG_FILE", config.LogFile)
	config.Timezone = envOrDefault("TIMEZONE", config.Timezone)
	config.UploadDir = envOrDefault("UPLOAD_DIR", orDefault(config.UploadDir, "./data/uploads"))
	config.S3.Bucket = envOrDefault("S3_BUCKET", config.S3.Bucket)
	config.S3.Region = envOrDefault("S3_REGION", orDefault(config.S3.Region, "us-east-1"))
	config.S3.Endpoint = envOrDefault("S3_ENDPOINT", config.S3.Endpoint)
	config.S3.AccessKey = envOrDefault("S3_ACCESS_KEY", config.S3.AccessKey)
	config.S3.SecretKey = envOrDefault("S3_SECRET_KEY", config.S3.SecretKey)
	config.S3.PublicURL = envOrDefault("S3_PUBLIC_URL", config.S3.PublicURL)

	if config.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}
	if _, err := config.Location(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Location resolves the timezone used to decide where a calendar day starts.
func (config Config) Location() (*time.Location, error) {
	if config.Timezone == "" {
		return time.Local, nil
	}
	location, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", config.Timezone, err)
	}
	return location, nil
}

func loadFile(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config file: %w", err)
	}
	defer file.Close()

	var config Config
	if err := toml.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, fmt.Errorf("decoding config file: %w", err)
	}
	return config, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}
