package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/mossdecode/internal/config"
)

type fileConfig struct {
	ChunkSize   int    `toml:"chunk_size"`
	ChunkSizeMB int    `toml:"chunk_size_mb"`
	Compression string `toml:"compression"`
	Output      string `toml:"output"`
	LogLevel    string `toml:"log_level"`
}

// loadDecoderConfig overlays the keys present in path onto the defaults.
func loadDecoderConfig(path string) (config.DecoderConfig, error) {
	cfg := config.DefaultDecoderConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config.DecoderConfig{}, fmt.Errorf("load decoder config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config.DecoderConfig{}, fmt.Errorf("load decoder config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("chunk_size") {
		cfg.ChunkSize = raw.ChunkSize
	}

	if meta.IsDefined("chunk_size_mb") {
		if meta.IsDefined("chunk_size") {
			return config.DecoderConfig{}, fmt.Errorf("load decoder config: chunk_size and chunk_size_mb are exclusive")
		}
		cfg.ChunkSize = raw.ChunkSizeMB << 20
	}

	if meta.IsDefined("compression") {
		cfg.Compression = strings.ToLower(strings.TrimSpace(raw.Compression))
	}

	if meta.IsDefined("output") {
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := config.ValidateDecoderConfig(cfg); err != nil {
		return config.DecoderConfig{}, err
	}
	return cfg, nil
}
