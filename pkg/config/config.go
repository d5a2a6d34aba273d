// Package config loads CLI settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	DatabasePath  string `validate:"required"`
	OutputRoot    string `validate:"required"`
	ManifestPath  string `validate:"required"`
	ImagesPath    string
	LogLevel      string `validate:"omitempty,oneof=debug info warn error"`
	LogFormat     string `validate:"omitempty,oneof=text json"`
	DictCacheSize int    `validate:"gte=0"`
	Publish       PublishConfig
}

// PublishConfig locates the S3-compatible bucket bundles are uploaded to.
// Publishing is disabled while Endpoint is empty.
type PublishConfig struct {
	Endpoint  string
	Region    string
	AccessKey string `validate:"required_with=Endpoint"`
	SecretKey string `validate:"required_with=Endpoint"`
	Bucket    string `validate:"required_with=Endpoint"`
	Prefix    string
	UseSSL    bool
}

// Enabled reports whether a publish target is configured.
func (p PublishConfig) Enabled() bool {
	return p.Endpoint != ""
}

// Environment variable prefix.
const envPrefix = "LIBRELINGO_"

// Load reads the given .env files (default ".env"; missing files are
// ignored), then the environment, and validates the result. Variables
// already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cacheSize, err := intEnv("DICT_CACHE_SIZE", 0)
	if err != nil {
		return nil, err
	}
	useSSL, err := boolEnv("S3_USE_SSL", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabasePath:  stringEnv("DB", "librelingo.db"),
		OutputRoot:    stringEnv("OUTPUT_ROOT", "./src/courses"),
		ManifestPath:  stringEnv("MANIFEST", "./src/audios_to_fetch.csv"),
		ImagesPath:    stringEnv("IMAGES", "./docs/image_attributions.csv"),
		LogLevel:      strings.ToLower(stringEnv("LOG_LEVEL", "info")),
		LogFormat:     strings.ToLower(stringEnv("LOG_FORMAT", "text")),
		DictCacheSize: cacheSize,
		Publish: PublishConfig{
			Endpoint:  stringEnv("S3_ENDPOINT", ""),
			Region:    stringEnv("S3_REGION", "us-east-1"),
			AccessKey: stringEnv("S3_ACCESS_KEY", ""),
			SecretKey: stringEnv("S3_SECRET_KEY", ""),
			Bucket:    stringEnv("S3_BUCKET", ""),
			Prefix:    stringEnv("S3_PREFIX", ""),
			UseSSL:    useSSL,
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(envPrefix + key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(envPrefix + key))
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	return b, nil
}
