package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/finresearchshi-boop/sustainability-report-parser/internal/detect"
)

type Config struct {
	Port string `yaml:"port"`

	// Auth for the HTTP API.
	APIKey string `yaml:"api_key"`

	// Worker pool
	WorkerCount  int `yaml:"worker_count"`
	MaxQueueSize int `yaml:"max_queue_size"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// Parsing defaults
	Strategy    string `yaml:"strategy"`
	MaxTOCPages int    `yaml:"max_toc_pages"`

	// Artifact export; empty disables server-side export.
	OutputDir    string `yaml:"output_dir"`
	ExportAssets bool   `yaml:"export_assets"`

	// Job state
	JobTTL time.Duration `yaml:"job_ttl"`
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("REPORTPARSE_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 104857600), // 100MB

		Strategy:    envOr("PARSE_STRATEGY", "auto"),
		MaxTOCPages: envInt("MAX_TOC_PAGES", detect.DefaultMaxTOCPages),

		OutputDir:    os.Getenv("OUTPUT_DIR"),
		ExportAssets: envBool("EXPORT_ASSETS", false),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}
	return cfg.withDefaults()
}

// LoadFile overlays a YAML config file on the environment-derived defaults.
func LoadFile(path string) (Config, error) {
	cfg := Load()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.Port == "" {
		c.Port = "8090"
	}
	if c.WorkerCount <= 0 {
		c.WorkerCount = 4
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = 100
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 104857600
	}
	if c.Strategy == "" {
		c.Strategy = "auto"
	}
	if c.MaxTOCPages <= 0 {
		c.MaxTOCPages = detect.DefaultMaxTOCPages
	}
	if c.JobTTL <= 0 {
		c.JobTTL = 1 * time.Hour
	}
	return c
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("REPORTPARSE_API_KEY is required")
	}
	if _, err := detect.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
