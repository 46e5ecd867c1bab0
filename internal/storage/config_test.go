package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("failed to load defaults: %v", err)
	}
	if cfg.DefaultExtension != ".md" {
		t.Errorf("expected .md default extension, got %q", cfg.DefaultExtension)
	}
	if cfg.MaxTextFileSize != 1<<20 {
		t.Errorf("expected 1 MiB threshold, got %d", cfg.MaxTextFileSize)
	}
	if cfg.RateLimit.Requests != 60 {
		t.Errorf("expected default rate limit, got %+v", cfg.RateLimit)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("expected missing file to yield defaults, got %v", err)
	}
	if cfg.DefaultExtension != ".md" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := "default_extension: .txt\nmax_text_file_size: 2048\nrate_limit:\n  requests: 5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.DefaultExtension != ".txt" {
		t.Errorf("expected override, got %q", cfg.DefaultExtension)
	}
	if cfg.MaxTextFileSize != 2048 {
		t.Errorf("expected override, got %d", cfg.MaxTextFileSize)
	}
	if cfg.RateLimit.Requests != 5 {
		t.Errorf("expected override, got %+v", cfg.RateLimit)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(":[not yaml"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestConfig_IsTextExtension(t *testing.T) {
	cfg := DefaultConfig()
	for _, ext := range []string{".md", ".txt", ".json"} {
		if !cfg.IsTextExtension(ext) {
			t.Errorf("expected %q to be a text extension", ext)
		}
	}
	for _, ext := range []string{".exe", ".png", ""} {
		if cfg.IsTextExtension(ext) {
			t.Errorf("expected %q not to be a text extension", ext)
		}
	}
}
