// Package stream decodes MOSS captures of any length by reading them in
// chunks and carrying a partial trailing frame over to the next chunk.
package stream

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/mossdecode/internal/protocol"
	"github.com/danmuck/mossdecode/internal/protocol/frame"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"
)

const (
	DefaultChunkSize = 10 << 20

	maxEmptyReads = 100
)

// Options tunes a Decoder.
type Options struct {
	ChunkSize   int
	Compression Compression
	Logger      zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		ChunkSize:   DefaultChunkSize,
		Compression: CompressionAuto,
		Logger:      log.Logger,
	}
}

// Summary describes one finished stream decode.
type Summary struct {
	Packets  int    `json:"packets" cbor:"packets"`
	Hits     int    `json:"hits" cbor:"hits"`
	Bytes    int64  `json:"bytes" cbor:"bytes"`
	Chunks   int    `json:"chunks" cbor:"chunks"`
	Deferred int    `json:"deferred" cbor:"deferred"`
	Digest   string `json:"digest" cbor:"digest"`
}

// Decoder reads a capture chunk by chunk. The accumulation buffer holds the
// bytes of the current chunk plus whatever the previous chunk could not
// complete; it is compacted in place after each drain.
type Decoder struct {
	r         io.Reader
	chunkSize int
	log       zerolog.Logger
	hasher    *blake3.Hasher

	acc     []byte
	halted  bool
	summary Summary
}

func NewDecoder(r io.Reader, opts Options) *Decoder {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	return &Decoder{
		r:         r,
		chunkSize: opts.ChunkSize,
		log:       opts.Logger,
		hasher:    blake3.New(),
	}
}

// Each reads the source to its end and calls fn for every packet in stream
// order. Read errors and malformed or cut-off trailing frames end the stream
// without an error; an error from fn is returned as is. A stream that yields
// no packets at all fails with protocol.ErrEmptyResult.
func (d *Decoder) Each(fn func(protocol.Packet) error) error {
	empty := 0
	for !d.halted {
		d.reserve()
		n, err := d.r.Read(d.acc[len(d.acc) : len(d.acc)+d.chunkSize])
		if n > 0 {
			empty = 0
			_, _ = d.hasher.Write(d.acc[len(d.acc) : len(d.acc)+n])
			d.acc = d.acc[:len(d.acc)+n]
			d.summary.Bytes += int64(n)
			d.summary.Chunks++
			if ferr := d.drain(fn); ferr != nil {
				return ferr
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				d.log.Warn().Err(err).Int64("bytes", d.summary.Bytes).Msg("capture read failed, keeping decoded packets")
			}
			break
		}
		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				d.log.Warn().Err(io.ErrNoProgress).Msg("capture read stalled, keeping decoded packets")
				break
			}
		}
	}

	d.summary.Deferred = len(d.acc)
	d.summary.Digest = hex.EncodeToString(d.hasher.Sum(nil))
	d.log.Debug().
		Int("packets", d.summary.Packets).
		Int("chunks", d.summary.Chunks).
		Int("deferred", d.summary.Deferred).
		Msg("stream decode finished")

	if d.summary.Packets == 0 {
		return fmt.Errorf("stream: %w after %d bytes", protocol.ErrEmptyResult, d.summary.Bytes)
	}
	return nil
}

// Decode collects every packet of the stream.
func (d *Decoder) Decode() ([]protocol.Packet, error) {
	packets := make([]protocol.Packet, 0, frame.Prealloc(d.chunkSize))
	err := d.Each(func(p protocol.Packet) error {
		packets = append(packets, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return packets, nil
}

// Summary reports what has been decoded so far.
func (d *Decoder) Summary() Summary {
	return d.summary
}

// reserve makes room for one more chunk after the carried-over tail.
func (d *Decoder) reserve() {
	if cap(d.acc)-len(d.acc) >= d.chunkSize {
		return
	}
	grown := make([]byte, len(d.acc), len(d.acc)+d.chunkSize)
	copy(grown, d.acc)
	d.acc = grown
}

// drain extracts every complete frame from the accumulation buffer and keeps
// only the unconsumed tail.
func (d *Decoder) drain(fn func(protocol.Packet) error) error {
	consumed := 0
	for consumed < len(d.acc) {
		p, trailer, err := frame.Extract(d.acc[consumed:])
		if err != nil {
			switch {
			case errors.Is(err, protocol.ErrNoHeaderFound):
				// No frame can start in the remaining bytes.
				consumed = len(d.acc)
			case errors.Is(err, protocol.ErrProtocol):
				d.log.Warn().Err(err).Int("packets", d.summary.Packets).Msg("malformed frame, stopping stream")
				d.halted = true
			default:
				d.log.Debug().Int("tail", len(d.acc)-consumed).Msg("deferring partial frame to next chunk")
			}
			break
		}
		if err := fn(p); err != nil {
			return err
		}
		d.summary.Packets++
		d.summary.Hits += len(p.Hits)
		consumed += trailer + 1
	}

	rest := copy(d.acc, d.acc[consumed:])
	d.acc = d.acc[:rest]
	return nil
}
