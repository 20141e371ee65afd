package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/danmuck/mossdecode/internal/observability"
	"github.com/danmuck/mossdecode/internal/protocol"
	"github.com/danmuck/mossdecode/internal/protocol/stream"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "mossgen: %v\n", err)
		os.Exit(1)
	}
}

type genOptions struct {
	Frames      int
	MaxHits     int
	Seed        uint64
	NoiseBytes  int
	Compression stream.Compression
}

func run(args []string) error {
	flags := pflag.NewFlagSet("mossgen", pflag.ContinueOnError)
	out := flags.StringP("out", "o", "", "capture path to write (required)")
	frames := flags.IntP("frames", "n", 1000, "unit frames to generate")
	maxHits := flags.Int("max-hits", 32, "largest hit count per frame")
	seed := flags.Uint64("seed", 1, "random seed")
	noise := flags.Int("noise", 4, "largest idle/delimiter run between frames")
	compression := flags.String("compression", "none", "output compression: none|zstd|lz4")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if *out == "" {
		return fmt.Errorf("--out is required")
	}
	c, err := stream.ParseCompression(*compression)
	if err != nil {
		return err
	}
	if c == stream.CompressionAuto {
		c = stream.CompressionNone
	}

	logger := observability.InitLogger("mossgen")
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create capture: %w", err)
	}
	packets, err := generate(f, genOptions{
		Frames:      *frames,
		MaxHits:     *maxHits,
		Seed:        *seed,
		NoiseBytes:  *noise,
		Compression: c,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	hits := 0
	for _, p := range packets {
		hits += len(p.Hits)
	}
	logger.Info().
		Str("out", *out).
		Str("compression", string(c)).
		Int("frames", len(packets)).
		Int("hits", hits).
		Msg("capture written")
	return nil
}

// generate writes opts.Frames random unit frames to w and returns the packets
// they encode. Runs of idle and delimiter bytes separate the frames.
func generate(w io.Writer, opts genOptions) ([]protocol.Packet, error) {
	if opts.Frames < 0 || opts.MaxHits < 0 || opts.NoiseBytes < 0 {
		return nil, fmt.Errorf("negative generator option: %+v", opts)
	}

	var (
		sink   io.Writer = w
		closer io.Closer
	)
	switch opts.Compression {
	case stream.CompressionZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		sink, closer = enc, enc
	case stream.CompressionLZ4:
		enc := lz4.NewWriter(w)
		sink, closer = enc, enc
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9E3779B97F4A7C15))
	packets := make([]protocol.Packet, 0, opts.Frames)
	buf := make([]byte, 0, 4096)
	for i := 0; i < opts.Frames; i++ {
		p := randomPacket(rng, opts.MaxHits)
		var err error
		buf = appendNoise(buf[:0], rng, opts.NoiseBytes)
		buf, err = protocol.AppendFrame(buf, p)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if _, err := sink.Write(buf); err != nil {
			return nil, fmt.Errorf("write frame %d: %w", i, err)
		}
		packets = append(packets, p)
	}

	if closer != nil {
		if err := closer.Close(); err != nil {
			return nil, fmt.Errorf("flush %s: %w", opts.Compression, err)
		}
	}
	return packets, nil
}

func randomPacket(rng *rand.Rand, maxHits int) protocol.Packet {
	p := protocol.Packet{
		UnitID: uint8(rng.IntN(int(protocol.MaxUnitID) + 1)),
		Hits:   []protocol.Hit{},
	}
	if maxHits == 0 {
		return p
	}
	n := rng.IntN(maxHits + 1)
	region := uint8(0)
	for j := 0; j < n; j++ {
		if region < protocol.MaxRegionID && rng.IntN(4) == 0 {
			region++
		}
		p.Hits = append(p.Hits, protocol.Hit{
			Region: region,
			Row:    uint16(rng.IntN(int(protocol.MaxRow) + 1)),
			Column: uint16(rng.IntN(int(protocol.MaxColumn) + 1)),
		})
	}
	return p
}

func appendNoise(dst []byte, rng *rand.Rand, limit int) []byte {
	if limit == 0 {
		return dst
	}
	for n := rng.IntN(limit + 1); n > 0; n-- {
		if rng.IntN(3) == 0 {
			dst = append(dst, protocol.Delimiter)
		} else {
			dst = append(dst, protocol.Idle)
		}
	}
	return dst
}
