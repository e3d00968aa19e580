package config

import (
	"fmt"
	"os"

	"scancal/pkg/formatting"
	"scancal/pkg/middleware"
	"scancal/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SCANCAL_CORS_ENABLED",
	Origins:          "SCANCAL_CORS_ORIGINS",
	AllowedMethods:   "SCANCAL_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SCANCAL_CORS_ALLOWED_HEADERS",
	AllowCredentials: "SCANCAL_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SCANCAL_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "SCANCAL_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "SCANCAL_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath       string                `toml:"base_path"`
	MaxCaptureSize string                `toml:"max_capture_size"`
	BatchWorkers   int                   `toml:"batch_workers"`
	CORS           middleware.CORSConfig `toml:"cors"`
	Pagination     pagination.Config     `toml:"pagination"`
}

// MaxCaptureSizeBytes returns the capture upload limit as a byte count.
func (c *APIConfig) MaxCaptureSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxCaptureSize)
	if err != nil {
		return 10 * 1024 * 1024 // 10MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if c.BatchWorkers < 1 {
		return fmt.Errorf("batch_workers must be positive")
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxCaptureSize != "" {
		c.MaxCaptureSize = overlay.MaxCaptureSize
	}
	if overlay.BatchWorkers != 0 {
		c.BatchWorkers = overlay.BatchWorkers
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxCaptureSize == "" {
		c.MaxCaptureSize = "10MB"
	}
	if c.BatchWorkers == 0 {
		c.BatchWorkers = 4
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("SCANCAL_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("SCANCAL_API_MAX_CAPTURE_SIZE"); v != "" {
		c.MaxCaptureSize = v
	}
}
