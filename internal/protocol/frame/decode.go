package frame

import (
	"errors"
	"fmt"

	"github.com/danmuck/mossdecode/internal/protocol"
)

const (
	// MinFrameBytes is the smallest buffer the whole-buffer decoders accept.
	MinFrameBytes = 6

	minPrealloc = 10
)

// Prealloc is the packet capacity reserved for a buffer of n bytes.
func Prealloc(n int) int {
	return max(minPrealloc, n/1024)
}

func checkSize(buf []byte) error {
	if len(buf) < MinFrameBytes {
		return fmt.Errorf("%w: got %d, need at least %d", protocol.ErrInsufficientBytes, len(buf), MinFrameBytes)
	}
	return nil
}

// DecodeEvent decodes exactly one unit frame from buf and returns the bytes
// that follow its trailer. The returned slice aliases buf.
func DecodeEvent(buf []byte) (protocol.Packet, []byte, error) {
	if err := checkSize(buf); err != nil {
		return protocol.Packet{}, nil, err
	}
	p, trailer, err := Extract(buf)
	if err != nil {
		return protocol.Packet{}, nil, err
	}
	return p, buf[trailer+1:], nil
}

// DecodeMultiple decodes every complete unit frame in buf and returns the
// packets with the index of the last trailer consumed.
//
// Decoding stops quietly when fewer than MinFrameBytes remain, when no further
// header exists, or when the last frame is cut off. A protocol violation
// aborts the call: the packets decoded before the failing frame are returned
// together with the error. Zero decoded packets is reported as ErrEmptyResult.
func DecodeMultiple(buf []byte) ([]protocol.Packet, int, error) {
	if err := checkSize(buf); err != nil {
		return nil, 0, err
	}

	packets := make([]protocol.Packet, 0, Prealloc(len(buf)))
	cursor, last := 0, 0
	for len(buf)-cursor >= MinFrameBytes {
		p, trailer, err := Extract(buf[cursor:])
		if err != nil {
			if errors.Is(err, protocol.ErrProtocol) {
				return packets, last, fmt.Errorf("packet %d: %w", len(packets), rebase(err, cursor))
			}
			if len(packets) == 0 {
				return nil, 0, fmt.Errorf("%w: %w", protocol.ErrEmptyResult, rebase(err, cursor))
			}
			break
		}
		packets = append(packets, p)
		last = cursor + trailer
		cursor = last + 1
	}

	if len(packets) == 0 {
		return nil, 0, protocol.ErrEmptyResult
	}
	return packets, last, nil
}

// DecodeMultipleLenient decodes buf with the unchecked reference decoder. It
// accepts region headers in any order and never reports protocol errors; use
// it for benchmarks and cross-checks, not for validation.
func DecodeMultipleLenient(buf []byte) ([]protocol.Packet, int, error) {
	if err := checkSize(buf); err != nil {
		return nil, 0, err
	}
	packets, last := protocol.DecodeLenient(buf, Prealloc(len(buf)))
	if len(packets) == 0 {
		return nil, 0, protocol.ErrEmptyResult
	}
	return packets, last, nil
}
