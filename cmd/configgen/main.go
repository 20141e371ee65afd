package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/danmuck/mossdecode/internal/config"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "configgen: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("configgen", pflag.ContinueOnError)
	kind := flags.String("kind", "decoder", "config kind: decoder|daemon")
	output := flags.String("output", "", "output path for config template")
	validate := flags.Bool("validate", false, "validate an existing config file")
	input := flags.String("input", "", "config path for validation (defaults to per-kind cmd path)")
	force := flags.Bool("force", false, "overwrite existing config file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	path, err := defaultPath(*kind)
	if err != nil {
		return err
	}

	if *validate {
		if *input != "" {
			path = *input
		}
		switch *kind {
		case "decoder":
			_, err = config.LoadDecoderConfig(path)
		case "daemon":
			_, err = config.LoadDaemonConfig(path)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "validated %s config at %s\n", *kind, path)
		return nil
	}

	if *output != "" {
		path = *output
	}
	if err := config.WriteTemplate(path, *kind, *force); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s config template to %s\n", *kind, path)
	return nil
}

func defaultPath(kind string) (string, error) {
	switch kind {
	case "decoder":
		return "cmd/mossdecode/config.toml", nil
	case "daemon":
		return "cmd/mossd/config.toml", nil
	default:
		return "", fmt.Errorf("unknown kind: %s", kind)
	}
}
