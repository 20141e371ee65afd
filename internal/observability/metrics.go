package observability

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/mossdecode/internal/protocol"
	"github.com/danmuck/mossdecode/internal/protocol/frame"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moss",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "moss",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	decodePackets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moss",
			Subsystem: "decode",
			Name:      "packets_total",
			Help:      "Unit frames decoded into packets.",
		},
		[]string{"op"},
	)
	decodeHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moss",
			Subsystem: "decode",
			Name:      "hits_total",
			Help:      "Hits decoded across all packets.",
		},
		[]string{"op"},
	)
	decodeBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moss",
			Subsystem: "decode",
			Name:      "bytes_total",
			Help:      "Raw capture bytes handed to the decoder.",
		},
		[]string{"op"},
	)
	decodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moss",
			Subsystem: "decode",
			Name:      "errors_total",
			Help:      "Failed decode calls by error kind.",
		},
		[]string{"op", "kind"},
	)
	decodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "moss",
			Subsystem: "decode",
			Name:      "duration_seconds",
			Help:      "Decode call duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"op"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests, httpDuration,
			decodePackets, decodeHits, decodeBytes, decodeErrors, decodeDuration,
		)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordDecode accounts one finished decode call of operation op.
func RecordDecode(op string, packets []protocol.Packet, bytes int, duration time.Duration, err error) {
	hits := 0
	for _, p := range packets {
		hits += len(p.Hits)
	}
	RecordDecodeCounts(op, len(packets), hits, int64(bytes), duration, err)
}

// RecordDecodeCounts is RecordDecode for callers that stream packets and only
// keep totals.
func RecordDecodeCounts(op string, packets, hits int, bytes int64, duration time.Duration, err error) {
	RegisterMetrics()
	decodePackets.WithLabelValues(op).Add(float64(packets))
	decodeHits.WithLabelValues(op).Add(float64(hits))
	decodeBytes.WithLabelValues(op).Add(float64(bytes))
	decodeDuration.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil {
		decodeErrors.WithLabelValues(op, ErrorKind(err)).Inc()
	}
}

// ErrorKind maps a decode error to a stable metric and API label.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, protocol.ErrInsufficientBytes):
		return "insufficient_bytes"
	case errors.Is(err, protocol.ErrProtocol):
		return "protocol_error"
	case errors.Is(err, protocol.ErrEndOfBufferNoTrailer):
		return "end_of_buffer_no_trailer"
	case errors.Is(err, protocol.ErrEmptyResult):
		return "empty_result"
	case errors.Is(err, protocol.ErrNoHeaderFound):
		return "no_header_found"
	case errors.Is(err, frame.ErrFrameNotFound):
		return "frame_not_found"
	case errors.Is(err, frame.ErrNegativeCount):
		return "invalid_argument"
	default:
		return "other"
	}
}
