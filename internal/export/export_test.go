package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/danmuck/mossdecode/internal/protocol"
)

var samplePackets = []protocol.Packet{
	{UnitID: 0, Hits: []protocol.Hit{{Region: 0, Row: 2, Column: 8}, {Region: 1, Row: 301, Column: 433}}},
	{UnitID: 3},
}

func TestWriterJSONL(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatJSONL)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	for _, p := range samplePackets {
		if err := w.WritePacket(p); err != nil {
			t.Fatalf("write packet: %v", err)
		}
	}
	if w.Count() != 2 {
		t.Fatalf("unexpected count: %d", w.Count())
	}

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[1] != `{"unit_id":3,"hits":[]}` {
		t.Fatalf("unexpected empty packet line: %s", lines[1])
	}
	var first protocol.Packet
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !first.Equal(samplePackets[0]) {
		t.Fatalf("unexpected packet: %s", first)
	}
}

func TestWriterCBORSequence(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatCBOR)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	for _, p := range samplePackets {
		if err := w.WritePacket(p); err != nil {
			t.Fatalf("write packet: %v", err)
		}
	}
	got, err := ReadCBOR(&buf)
	if err != nil {
		t.Fatalf("read cbor: %v", err)
	}
	if len(got) != len(samplePackets) {
		t.Fatalf("expected %d packets, got %d", len(samplePackets), len(got))
	}
	for i := range got {
		if !got[i].Equal(samplePackets[i]) {
			t.Fatalf("packet %d: got %s want %s", i, got[i], samplePackets[i])
		}
	}
}

func TestWriterCBORDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	for _, buf := range []*bytes.Buffer{&a, &b} {
		w, err := NewWriter(buf, FormatCBOR)
		if err != nil {
			t.Fatalf("new writer: %v", err)
		}
		if err := w.WritePacket(samplePackets[0]); err != nil {
			t.Fatalf("write packet: %v", err)
		}
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("encoding not deterministic")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" CBOR "); err != nil || f != FormatCBOR {
		t.Fatalf("unexpected result: %q %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
	if _, err := NewWriter(&bytes.Buffer{}, "xml"); err == nil {
		t.Fatalf("expected error for xml writer")
	}
}
