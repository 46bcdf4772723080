package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	DB         DBConfig         `yaml:"db"`
	Storage    StorageConfig    `yaml:"storage"`
	Allocation AllocationConfig `yaml:"allocation"`
	Log        LogConfig        `yaml:"log"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type StorageConfig struct {
	// DefaultRoot is the process-wide storage root, third in the resolution
	// chain. Empty means not configured.
	DefaultRoot string `yaml:"default_root"`
	// FallbackDir is the last-resort directory, created if missing.
	FallbackDir string `yaml:"fallback_dir"`
}

type AllocationConfig struct {
	BaseYear      int    `yaml:"base_year"`
	YearBlock     int    `yaml:"year_block"`
	DefaultPrefix string `yaml:"default_prefix"`
	MaxAttempts   int    `yaml:"max_attempts"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		DB: DBConfig{
			Path: "reportvault.db",
		},
		Storage: StorageConfig{
			DefaultRoot: "",
			FallbackDir: "reports",
		},
		Allocation: AllocationConfig{
			BaseYear:      2020,
			YearBlock:     1000,
			DefaultPrefix: "02",
			MaxAttempts:   3,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("REPORTVAULT_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("REPORTVAULT_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if root := os.Getenv("REPORTVAULT_STORAGE_DEFAULT_ROOT"); root != "" {
		cfg.Storage.DefaultRoot = root
	}
	if dir := os.Getenv("REPORTVAULT_STORAGE_FALLBACK_DIR"); dir != "" {
		cfg.Storage.FallbackDir = dir
	}
	if yearStr := os.Getenv("REPORTVAULT_ALLOCATION_BASE_YEAR"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REPORTVAULT_ALLOCATION_BASE_YEAR: %w", err)
		}
		cfg.Allocation.BaseYear = year
	}
	if blockStr := os.Getenv("REPORTVAULT_ALLOCATION_YEAR_BLOCK"); blockStr != "" {
		block, err := strconv.Atoi(blockStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REPORTVAULT_ALLOCATION_YEAR_BLOCK: %w", err)
		}
		cfg.Allocation.YearBlock = block
	}
	if prefix := os.Getenv("REPORTVAULT_ALLOCATION_DEFAULT_PREFIX"); prefix != "" {
		cfg.Allocation.DefaultPrefix = prefix
	}
	if attemptsStr := os.Getenv("REPORTVAULT_ALLOCATION_MAX_ATTEMPTS"); attemptsStr != "" {
		attempts, err := strconv.Atoi(attemptsStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REPORTVAULT_ALLOCATION_MAX_ATTEMPTS: %w", err)
		}
		cfg.Allocation.MaxAttempts = attempts
	}
	if level := os.Getenv("REPORTVAULT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
