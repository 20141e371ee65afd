package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/mossdecode/internal/export"
	"github.com/danmuck/mossdecode/internal/protocol"
	"github.com/danmuck/mossdecode/internal/protocol/stream"
)

// sink routes decoded packets to the selected output. Summary mode prints
// nothing per packet.
type sink struct {
	out    io.Writer
	writer *export.Writer
}

func newSink(out io.Writer, output string) (*sink, error) {
	s := &sink{out: out}
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", "summary":
		return s, nil
	}
	format, err := export.ParseFormat(output)
	if err != nil {
		return nil, err
	}
	w, err := export.NewWriter(out, format)
	if err != nil {
		return nil, err
	}
	s.writer = w
	return s, nil
}

func (s *sink) packet(p protocol.Packet) error {
	if s.writer == nil {
		return nil
	}
	return s.writer.WritePacket(p)
}

func (s *sink) finish(summary stream.Summary) error {
	if s.writer != nil {
		return nil
	}
	_, err := fmt.Fprintf(s.out,
		"packets: %d\nhits: %d\nbytes: %d\nchunks: %d\ndeferred: %d\nblake3: %s\n",
		summary.Packets, summary.Hits, summary.Bytes, summary.Chunks, summary.Deferred, summary.Digest,
	)
	return err
}
