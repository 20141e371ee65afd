package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "decoder":
		return decoderTemplate, nil
	case "daemon":
		return daemonTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const decoderTemplate = `# mossdecode settings
chunk_size = 10485760
compression = "auto" # auto | none | zstd | lz4
output = "summary"   # summary | jsonl | cbor
log_level = "info"
`

const daemonTemplate = `name = "mossd"
addr = ":9400"
cors_origins = ["http://localhost:3000"]
max_body_bytes = 67108864
log_level = "info"
`
