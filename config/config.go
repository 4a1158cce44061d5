package config

import (
	"fmt"
	"os"
	"strings"

	"juriscrm/storage"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "JURISCRM_"

// Config holds the application configuration, loaded from an optional YAML
// file and overridable through JURISCRM_* environment variables.
type Config struct {
	Storage struct {
		Type       string `koanf:"type" validate:"oneof=local sqlite s3"`
		LocalPath  string `koanf:"local_path"`
		SQLitePath string `koanf:"sqlite_path"`
		S3Bucket   string `koanf:"s3_bucket"`
		S3Region   string `koanf:"s3_region"`
	} `koanf:"storage"`

	Gemini struct {
		APIKey string `koanf:"api_key"`
		Model  string `koanf:"model"`
	} `koanf:"gemini"`

	Schedule struct {
		LookaheadDays int `koanf:"lookahead_days" validate:"gte=0"`
	} `koanf:"schedule"`
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = "./data"
	cfg.Storage.SQLitePath = "./data/juriscrm.db"
	cfg.Storage.S3Region = "us-east-1"
	cfg.Schedule.LookaheadDays = 7
	return cfg
}

// Load reads configuration from the given YAML file (skipped when empty or
// absent) and applies environment overrides. JURISCRM_STORAGE_TYPE maps to
// storage.type, JURISCRM_SCHEDULE_LOOKAHEAD_DAYS to schedule.lookahead_days.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// STORAGE_LOCAL_PATH -> storage.local_path: only the first
			// underscore separates the section from the field.
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			if idx := strings.Index(key, "_"); idx > 0 {
				key = key[:idx] + "." + key[idx+1:]
			}
			return key, value
		},
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// StorageConfig translates the config into the storage factory's input
func (c *Config) StorageConfig() storage.StorageConfig {
	return storage.StorageConfig{
		Type:         storage.StorageType(c.Storage.Type),
		LocalPath:    c.Storage.LocalPath,
		SQLitePath:   c.Storage.SQLitePath,
		S3Bucket:     c.Storage.S3Bucket,
		S3Region:     c.Storage.S3Region,
		AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}
}
