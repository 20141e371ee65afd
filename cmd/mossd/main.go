package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/danmuck/mossdecode/internal/config"
	"github.com/danmuck/mossdecode/internal/logging"
	"github.com/danmuck/mossdecode/internal/observability"
	"github.com/danmuck/mossdecode/internal/server"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := resolveConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "mossd: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.Name)
	if cfg.LogLevel != "" {
		if level, ok := logging.ParseLevel(cfg.LogLevel); ok {
			zerolog.SetGlobalLevel(level)
		}
	}

	if err := server.New(cfg).Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "mossd: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig loads the optional config file and applies flag overrides.
func resolveConfig(args []string) (config.DaemonConfig, error) {
	flags := pflag.NewFlagSet("mossd", pflag.ContinueOnError)
	path := flags.StringP("config", "c", "", "daemon config file (toml)")
	addr := flags.String("addr", config.DefaultDaemonAddr, "listen address")
	name := flags.String("name", "mossd", "node name used in logs and metrics")
	maxBody := flags.Int64("max-body-bytes", config.DefaultMaxBodyBytes, "largest accepted request body")
	origins := flags.StringSlice("cors-origin", nil, "allowed CORS origin (repeatable)")
	logLevel := flags.String("log-level", "", "log level override")
	if err := flags.Parse(args); err != nil {
		return config.DaemonConfig{}, err
	}

	cfg := config.DefaultDaemonConfig()
	if *path != "" {
		loaded, err := config.LoadDaemonConfig(*path)
		if err != nil {
			return config.DaemonConfig{}, err
		}
		cfg = loaded
	}
	if flags.Changed("addr") {
		cfg.Addr = *addr
	}
	if flags.Changed("name") {
		cfg.Name = *name
	}
	if flags.Changed("max-body-bytes") {
		cfg.MaxBodyBytes = *maxBody
	}
	if flags.Changed("cors-origin") {
		cfg.CorsOrigins = *origins
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if err := config.ValidateDaemonConfig(cfg); err != nil {
		return config.DaemonConfig{}, err
	}
	return cfg, nil
}
