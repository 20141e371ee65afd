package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultChunkSize    = 10 << 20
	DefaultMaxBodyBytes = 64 << 20
	DefaultDaemonAddr   = ":9400"
)

// DecoderConfig drives file decoding in mossdecode.
type DecoderConfig struct {
	ChunkSize   int    `toml:"chunk_size"`
	Compression string `toml:"compression"`
	Output      string `toml:"output"`
	LogLevel    string `toml:"log_level"`
}

// DaemonConfig drives the mossd HTTP decode service.
type DaemonConfig struct {
	Name         string   `toml:"name"`
	Addr         string   `toml:"addr"`
	CorsOrigins  []string `toml:"cors_origins"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	LogLevel     string   `toml:"log_level"`
}

func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{
		ChunkSize:   DefaultChunkSize,
		Compression: "auto",
		Output:      "summary",
	}
}

func DefaultDaemonConfig() DaemonConfig {
	return DaemonConfig{
		Name:         "mossd",
		Addr:         DefaultDaemonAddr,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

func LoadDecoderConfig(path string) (DecoderConfig, error) {
	cfg := DefaultDecoderConfig()
	if err := loadToml(path, &cfg); err != nil {
		return DecoderConfig{}, err
	}
	if err := ValidateDecoderConfig(cfg); err != nil {
		return DecoderConfig{}, err
	}
	return cfg, nil
}

func LoadDaemonConfig(path string) (DaemonConfig, error) {
	cfg := DefaultDaemonConfig()
	if err := loadToml(path, &cfg); err != nil {
		return DaemonConfig{}, err
	}
	if cfg.Name == "" {
		cfg.Name = "mossd"
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultDaemonAddr
	}
	if err := ValidateDaemonConfig(cfg); err != nil {
		return DaemonConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateDecoderConfig(cfg DecoderConfig) error {
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("decoder config chunk_size must be positive, got %d", cfg.ChunkSize)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Compression)) {
	case "", "auto", "none", "zstd", "lz4":
	default:
		return fmt.Errorf("decoder config unknown compression %q", cfg.Compression)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Output)) {
	case "", "summary", "jsonl", "cbor":
	default:
		return fmt.Errorf("decoder config unknown output %q", cfg.Output)
	}
	return nil
}

func ValidateDaemonConfig(cfg DaemonConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("daemon config missing name")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("daemon config missing addr")
	}
	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("daemon config max_body_bytes must be positive, got %d", cfg.MaxBodyBytes)
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors_origins[%d] is empty", i)
		}
	}
	return nil
}
