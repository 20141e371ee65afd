package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/danmuck/mossdecode/internal/config"
	"github.com/danmuck/mossdecode/internal/logging"
	"github.com/danmuck/mossdecode/internal/observability"
	"github.com/danmuck/mossdecode/internal/protocol"
	"github.com/danmuck/mossdecode/internal/protocol/frame"
	"github.com/danmuck/mossdecode/internal/protocol/stream"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mossdecode: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	chunkSize   int
	compression string
	output      string
	outPath     string
	logLevel    string
	skip        int
	take        int
	lenient     bool
}

func run(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("mossdecode", pflag.ContinueOnError)
	var opts options
	flags.StringVarP(&opts.configPath, "config", "c", "", "decoder config file (toml)")
	flags.IntVar(&opts.chunkSize, "chunk-size", config.DefaultChunkSize, "bytes read per chunk")
	flags.StringVar(&opts.compression, "compression", "auto", "capture compression: auto|none|zstd|lz4")
	flags.StringVarP(&opts.output, "output", "o", "summary", "output format: summary|jsonl|cbor")
	flags.StringVar(&opts.outPath, "out", "", "write packets to this file instead of stdout")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override")
	flags.IntVar(&opts.skip, "skip", 0, "unit frames to skip before decoding")
	flags.IntVar(&opts.take, "take", 1, "unit frames to decode after skipping")
	flags.BoolVar(&opts.lenient, "lenient", false, "decode with the unchecked reference decoder")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: mossdecode [flags] <capture>\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("expected one capture path, got %d", flags.NArg())
	}
	capture := flags.Arg(0)

	cfg := config.DefaultDecoderConfig()
	if opts.configPath != "" {
		loaded, err := loadDecoderConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	applyFlagOverrides(&cfg, flags, opts)
	if err := config.ValidateDecoderConfig(cfg); err != nil {
		return err
	}

	logger := observability.InitLogger("mossdecode")
	if cfg.LogLevel != "" {
		level, ok := logging.ParseLevel(cfg.LogLevel)
		if !ok {
			return fmt.Errorf("unknown log level %q", cfg.LogLevel)
		}
		zerolog.SetGlobalLevel(level)
	}

	compression, err := stream.ParseCompression(cfg.Compression)
	if err != nil {
		return err
	}

	out := stdout
	if opts.outPath != "" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	dst, err := newSink(out, cfg.Output)
	if err != nil {
		return err
	}

	start := time.Now()
	if flags.Changed("skip") || flags.Changed("take") || opts.lenient {
		return decodeBuffered(capture, compression, opts, dst, logger, start)
	}

	rc, err := stream.OpenCapture(capture, compression)
	if err != nil {
		return err
	}
	defer rc.Close()

	dec := stream.NewDecoder(rc, stream.Options{
		ChunkSize:   cfg.ChunkSize,
		Compression: compression,
		Logger:      logger,
	})
	err = dec.Each(dst.packet)
	summary := dec.Summary()
	observability.RecordDecodeCounts("stream", summary.Packets, summary.Hits, summary.Bytes, time.Since(start), err)
	if err != nil {
		return err
	}

	logger.Info().
		Str("capture", capture).
		Int("packets", summary.Packets).
		Int("hits", summary.Hits).
		Int64("bytes", summary.Bytes).
		Int("chunks", summary.Chunks).
		Int("deferred", summary.Deferred).
		Dur("elapsed", time.Since(start)).
		Msg("capture decoded")
	return dst.finish(summary)
}

// decodeBuffered loads the whole capture into memory for the decoders that
// need random access to it.
func decodeBuffered(capture string, compression stream.Compression, opts options, dst *sink, logger zerolog.Logger, start time.Time) error {
	rc, err := stream.OpenCapture(capture, compression)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("read capture: %w", err)
	}

	var (
		packets []protocol.Packet
		last    int
		op      string
	)
	if opts.lenient {
		op = "events_lenient"
		packets, last, err = frame.DecodeMultipleLenient(data)
	} else {
		op = "skip_take"
		packets, last, err = frame.DecodeSkipTake(data, opts.skip, opts.take)
	}
	observability.RecordDecode(op, packets, len(data), time.Since(start), err)
	if err != nil {
		return err
	}

	for _, p := range packets {
		if err := dst.packet(p); err != nil {
			return err
		}
	}
	logger.Info().
		Str("capture", capture).
		Str("op", op).
		Int("packets", len(packets)).
		Int("last_trailer", last).
		Msg("capture decoded")
	return dst.finish(stream.Summary{
		Packets: len(packets),
		Hits:    countHits(packets),
		Bytes:   int64(len(data)),
	})
}

func applyFlagOverrides(cfg *config.DecoderConfig, flags *pflag.FlagSet, opts options) {
	if flags.Changed("chunk-size") {
		cfg.ChunkSize = opts.chunkSize
	}
	if flags.Changed("compression") {
		cfg.Compression = opts.compression
	}
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
}

func countHits(packets []protocol.Packet) int {
	n := 0
	for _, p := range packets {
		n += len(p.Hits)
	}
	return n
}
