package storage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RateLimitConfig controls the token-bucket limiter on mutation endpoints.
type RateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"window_seconds"`
	Burst         int `yaml:"burst"`
}

// Config holds the tunable policy knobs of the file manager. All fields
// have working defaults; a config file only needs the overrides.
type Config struct {
	// TextExtensions is the allow-list of extensions whose content is read
	// as text during scans, lowercased with leading dot.
	TextExtensions []string `yaml:"text_extensions"`
	// MaxTextFileSize is the size threshold in bytes below which files with
	// unknown extensions are still read as text.
	MaxTextFileSize int64 `yaml:"max_text_file_size"`
	// DefaultExtension is appended to created or imported file names that
	// have no extension.
	DefaultExtension string          `yaml:"default_extension"`
	RateLimit        RateLimitConfig `yaml:"rate_limit"`
}

// DefaultConfig returns the built-in policy matching the original system.
func DefaultConfig() *Config {
	return &Config{
		TextExtensions: []string{
			".md", ".txt", ".json", ".js", ".ts", ".jsx", ".tsx",
			".html", ".css", ".yml", ".yaml", ".xml",
		},
		MaxTextFileSize:  1 << 20, // 1 MiB
		DefaultExtension: ".md",
		RateLimit: RateLimitConfig{
			Requests:      60,
			WindowSeconds: 60,
			Burst:         20,
		},
	}
}

// LoadConfig reads a YAML config file, layering it over the defaults. A
// missing path (or empty argument) returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// IsTextExtension reports whether ext (lowercased, with dot) is in the
// text allow-list.
func (c *Config) IsTextExtension(ext string) bool {
	for _, e := range c.TextExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
