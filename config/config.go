package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Storage   StorageConfig   `yaml:"storage"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	Charset      string `yaml:"charset"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StorageConfig struct {
	BasePath               string `yaml:"base_path"`
	MaxFileSize            int64  `yaml:"max_file_size"`
	OrphanSweepEnabled     bool   `yaml:"orphan_sweep_enabled"`
	OrphanSweepInterval    int    `yaml:"orphan_sweep_interval"`
	OrphanRetentionSeconds int    `yaml:"orphan_retention_seconds"`
}

type RateLimitConfig struct {
	Enabled       bool `yaml:"enabled"`
	Times         int  `yaml:"times"`
	WindowSeconds int  `yaml:"window_seconds"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

var AppConfig *Config

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	AppConfig = &cfg
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Database.Charset == "" {
		cfg.Database.Charset = "utf8mb4"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "storage"
	}
	if cfg.Storage.MaxFileSize == 0 {
		cfg.Storage.MaxFileSize = 100 * 1024 * 1024
	}
	if cfg.Storage.OrphanSweepInterval <= 0 {
		cfg.Storage.OrphanSweepInterval = 3600
	}
	if cfg.Storage.OrphanRetentionSeconds <= 0 {
		cfg.Storage.OrphanRetentionSeconds = 24 * 3600
	}
	if cfg.RateLimit.Times <= 0 {
		cfg.RateLimit.Times = 5
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		cfg.RateLimit.WindowSeconds = 10
	}
}
