package frame

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/danmuck/mossdecode/internal/protocol"
)

var (
	ErrFrameNotFound = errors.New("frame: unit frame not found")
	ErrNegativeCount = errors.New("frame: negative skip or take")
)

// DecodeSkipTake fast-forwards past skip frames by pairing header and trailer
// bytes only, then fully decodes the next take frames. It returns those
// packets and the index of the last trailer consumed.
func DecodeSkipTake(buf []byte, skip, take int) ([]protocol.Packet, int, error) {
	if err := checkSize(buf); err != nil {
		return nil, 0, err
	}
	if skip < 0 || take < 0 {
		return nil, 0, fmt.Errorf("%w: skip=%d take=%d", ErrNegativeCount, skip, take)
	}

	cursor, last := 0, 0
	for i := 0; i < skip; i++ {
		header := scanHeader(buf, cursor)
		if header < 0 {
			return nil, 0, fmt.Errorf("%w: no unit frame header found for packet %d", ErrFrameNotFound, i)
		}
		trailer := bytes.IndexByte(buf[header+1:], protocol.UnitFrameTrailer)
		if trailer < 0 {
			return nil, 0, fmt.Errorf("%w: no unit frame trailer found for packet %d", ErrFrameNotFound, i)
		}
		last = header + 1 + trailer
		cursor = last + 1
	}

	if take == 0 {
		return nil, last, protocol.ErrEmptyResult
	}

	packets := make([]protocol.Packet, 0, min(take, Prealloc(len(buf)-cursor)))
	for i := 0; i < take; i++ {
		p, trailer, err := Extract(buf[cursor:])
		if err != nil {
			return nil, last, fmt.Errorf("packet %d: %w", skip+i, rebase(err, cursor))
		}
		packets = append(packets, p)
		last = cursor + trailer
		cursor = last + 1
	}
	return packets, last, nil
}
