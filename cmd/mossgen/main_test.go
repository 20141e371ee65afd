package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/mossdecode/internal/protocol"
	"github.com/danmuck/mossdecode/internal/protocol/frame"
	"github.com/danmuck/mossdecode/internal/protocol/stream"
)

func assertSamePackets(t *testing.T, got, want []protocol.Packet) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d packets, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("packet %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestGenerateDecodesBack(t *testing.T) {
	var buf bytes.Buffer
	want, err := generate(&buf, genOptions{Frames: 200, MaxHits: 40, Seed: 7, NoiseBytes: 6})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	got, _, err := frame.DecodeMultiple(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertSamePackets(t, got, want)
}

func TestGenerateIsSeeded(t *testing.T) {
	var a, b bytes.Buffer
	opts := genOptions{Frames: 50, MaxHits: 10, Seed: 42, NoiseBytes: 3}
	if _, err := generate(&a, opts); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := generate(&b, opts); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("expected identical captures for the same seed")
	}
}

func TestGenerateCompressedCaptures(t *testing.T) {
	for _, c := range []stream.Compression{stream.CompressionZstd, stream.CompressionLZ4} {
		t.Run(string(c), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "capture."+string(c))
			f, err := os.Create(path)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			want, err := generate(f, genOptions{Frames: 64, MaxHits: 12, Seed: 3, NoiseBytes: 2, Compression: c})
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			opts := stream.DefaultOptions()
			opts.ChunkSize = 97
			got, summary, err := stream.DecodeFile(path, opts)
			if err != nil {
				t.Fatalf("decode file: %v", err)
			}
			assertSamePackets(t, got, want)
			if summary.Deferred != 0 {
				t.Fatalf("expected no deferred bytes, got %d", summary.Deferred)
			}
		})
	}
}

func TestRunRequiresOut(t *testing.T) {
	if err := run([]string{"--frames", "1"}); err == nil {
		t.Fatalf("expected missing --out error")
	}
}

func TestRunWritesCapture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.raw")
	if err := run([]string{"--out", path, "-n", "10", "--seed", "9"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	got, _, err := stream.DecodeFile(path, stream.DefaultOptions())
	if err != nil {
		t.Fatalf("decode file: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 packets, got %d", len(got))
	}
}
