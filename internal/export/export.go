// Package export writes decoded packets for downstream analysis.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/mossdecode/internal/protocol"
	"github.com/fxamacker/cbor/v2"
)

// Format selects the packet serialization.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatCBOR  Format = "cbor"
)

func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSONL, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("export: unknown format %q", name)
	}
}

// encMode uses Core Deterministic Encoding so identical packets always
// serialize to identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}
}

type encoder interface {
	Encode(v any) error
}

// Writer emits one record per packet: a JSON object per line, or a CBOR
// sequence (RFC 8742) of maps.
type Writer struct {
	enc   encoder
	count int
}

func NewWriter(w io.Writer, format Format) (*Writer, error) {
	switch format {
	case FormatJSONL:
		return &Writer{enc: json.NewEncoder(w)}, nil
	case FormatCBOR:
		return &Writer{enc: encMode.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("export: unknown format %q", format)
	}
}

func (w *Writer) WritePacket(p protocol.Packet) error {
	if p.Hits == nil {
		p.Hits = []protocol.Hit{}
	}
	if err := w.enc.Encode(p); err != nil {
		return fmt.Errorf("export: packet %d: %w", w.count, err)
	}
	w.count++
	return nil
}

// Count is the number of packets written.
func (w *Writer) Count() int {
	return w.count
}

// ReadCBOR decodes a CBOR sequence written by Writer.
func ReadCBOR(r io.Reader) ([]protocol.Packet, error) {
	dec := cbor.NewDecoder(r)
	var out []protocol.Packet
	for {
		var p protocol.Packet
		if err := dec.Decode(&p); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, fmt.Errorf("export: cbor packet %d: %w", len(out), err)
		}
		out = append(out, p)
	}
}
