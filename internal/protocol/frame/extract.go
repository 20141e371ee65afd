package frame

import (
	"errors"
	"fmt"

	"github.com/danmuck/mossdecode/internal/protocol"
)

// Extract decodes the first unit frame in buf. Bytes before the header are
// skipped whatever they are. It returns the packet and the index of the frame
// trailer in buf.
func Extract(buf []byte) (protocol.Packet, int, error) {
	header := scanHeader(buf, 0)
	if header < 0 {
		return protocol.Packet{}, 0, &protocol.ParseError{
			Kind:    protocol.KindNoHeaderFound,
			Message: fmt.Sprintf("no unit frame header in %d bytes", len(buf)),
			Index:   len(buf),
			Frame:   -1,
		}
	}

	hits, trailer, err := protocol.ExtractHits(buf[header+1:])
	if err != nil {
		var perr *protocol.ParseError
		if !errors.As(err, &perr) {
			return protocol.Packet{}, 0, err
		}
		out := *perr
		out.Index = perr.Index + 1
		out.Frame = header
		out.Window = Window(buf, header, header+out.Index)
		return protocol.Packet{}, 0, &out
	}

	return protocol.Packet{
		UnitID: buf[header] & 0x0F,
		Hits:   hits,
	}, header + 1 + trailer, nil
}

func scanHeader(buf []byte, from int) int {
	for i := from; i < len(buf); i++ {
		if protocol.IsUnitFrameHeader(buf[i]) {
			return i
		}
	}
	return -1
}

// rebase shifts the frame offset of a ParseError produced on buf[base:] so it
// points into the caller's buffer.
func rebase(err error, base int) error {
	var perr *protocol.ParseError
	if base == 0 || !errors.As(err, &perr) || perr.Frame < 0 {
		return err
	}
	out := *perr
	out.Frame += base
	return &out
}
