package stream

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/mossdecode/internal/protocol"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how a capture file is unwrapped before decoding.
type Compression string

const (
	CompressionAuto Compression = "auto"
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// ParseCompression parses a compression name; the empty string means auto.
func ParseCompression(name string) (Compression, error) {
	switch c := Compression(strings.ToLower(strings.TrimSpace(name))); c {
	case "":
		return CompressionAuto, nil
	case CompressionAuto, CompressionNone, CompressionZstd, CompressionLZ4:
		return c, nil
	default:
		return "", fmt.Errorf("stream: unknown compression %q", name)
	}
}

// DecodeFile stream-decodes the capture at path. Open failures are returned
// wrapped, so errors.Is(err, fs.ErrNotExist) identifies a missing file.
func DecodeFile(path string, opts Options) ([]protocol.Packet, Summary, error) {
	rc, err := OpenCapture(path, opts.Compression)
	if err != nil {
		return nil, Summary{}, err
	}
	defer rc.Close()

	dec := NewDecoder(rc, opts)
	packets, err := dec.Decode()
	if err != nil {
		return nil, dec.Summary(), fmt.Errorf("decode %s: %w", path, err)
	}
	return packets, dec.Summary(), nil
}

// OpenCapture opens path and unwraps zstd or lz4 framing. In auto mode the
// format is chosen from the file's magic bytes.
func OpenCapture(path string, c Compression) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stream: open capture: %w", err)
	}
	rc, err := wrapCapture(f, c)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stream: open capture %s: %w", path, err)
	}
	return rc, nil
}

func wrapCapture(f *os.File, c Compression) (io.ReadCloser, error) {
	br := bufio.NewReader(f)
	if c == "" || c == CompressionAuto {
		c = sniffCompression(br)
	}
	switch c {
	case CompressionNone:
		return &captureReader{Reader: br, file: f}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return &captureReader{Reader: zr, file: f, release: zr.Close}, nil
	case CompressionLZ4:
		return &captureReader{Reader: lz4.NewReader(br), file: f}, nil
	default:
		return nil, fmt.Errorf("unsupported compression %q", c)
	}
}

func sniffCompression(br *bufio.Reader) Compression {
	head, _ := br.Peek(4)
	switch {
	case bytes.Equal(head, zstdMagic):
		return CompressionZstd
	case bytes.Equal(head, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

type captureReader struct {
	io.Reader
	file    *os.File
	release func()
}

func (c *captureReader) Close() error {
	if c.release != nil {
		c.release()
	}
	return c.file.Close()
}
