package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Auth; empty disables the auth middleware.
	APIKey string

	// Upload limits for /api/convert.
	MaxUploadBytes int64

	// Default output format for /api/render when none is requested.
	DefaultFormat string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port:                 envOr("PORT", "8090"),
		APIKey:               os.Getenv("PTRENDER_API_KEY"),
		MaxUploadBytes:       envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB
		DefaultFormat:        envOr("DEFAULT_FORMAT", "html"),
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.DefaultFormat {
	case "html", "text", "term":
		return nil
	}
	return fmt.Errorf("DEFAULT_FORMAT must be html, text, or term (got %q)", c.DefaultFormat)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
