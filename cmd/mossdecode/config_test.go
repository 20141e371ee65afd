package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/mossdecode/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDecoderConfigDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
chunk_size = 4096
compression = " ZSTD "
`)
	cfg, err := loadDecoderConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ChunkSize != 4096 {
		t.Fatalf("unexpected chunk size: %d", cfg.ChunkSize)
	}
	if cfg.Compression != "zstd" {
		t.Fatalf("unexpected compression: %q", cfg.Compression)
	}
	if cfg.Output != config.DefaultDecoderConfig().Output {
		t.Fatalf("expected default output, got %q", cfg.Output)
	}
	if cfg.LogLevel != "" {
		t.Fatalf("expected empty log level, got %q", cfg.LogLevel)
	}
}

func TestLoadDecoderConfigChunkSizeMB(t *testing.T) {
	cfg, err := loadDecoderConfig(writeConfig(t, "chunk_size_mb = 2\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ChunkSize != 2<<20 {
		t.Fatalf("unexpected chunk size: %d", cfg.ChunkSize)
	}

	_, err = loadDecoderConfig(writeConfig(t, "chunk_size = 1\nchunk_size_mb = 2\n"))
	if err == nil || !strings.Contains(err.Error(), "exclusive") {
		t.Fatalf("expected exclusive size error, got %v", err)
	}
}

func TestLoadDecoderConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero chunk", "chunk_size = 0\n", "chunk_size"},
		{"bad compression", "compression = \"gzip\"\n", "compression"},
		{"bad output", "output = \"xml\"\n", "output"},
		{"unknown key", "chunks = 4\n", "unknown key"},
		{"bad toml", "chunk_size = \n", "load decoder config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadDecoderConfig(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadDecoderConfigMissingFile(t *testing.T) {
	if _, err := loadDecoderConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}
