package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientBytes    = errors.New("protocol: insufficient bytes")
	ErrNoHeaderFound        = errors.New("protocol: no unit frame header found")
	ErrProtocol             = errors.New("protocol: protocol violation")
	ErrEndOfBufferNoTrailer = errors.New("protocol: end of buffer before unit frame trailer")
	ErrEmptyResult          = errors.New("protocol: no packets decoded")
	ErrUnencodable          = errors.New("protocol: packet cannot be encoded")
)

// ErrorKind classifies a ParseError.
type ErrorKind uint8

const (
	KindNoHeaderFound ErrorKind = iota + 1
	KindProtocolError
	KindEndOfBufferNoTrailer
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoHeaderFound:
		return "NoHeaderFound"
	case KindProtocolError:
		return "ProtocolError"
	case KindEndOfBufferNoTrailer:
		return "EndOfBufferNoTrailer"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNoHeaderFound:
		return ErrNoHeaderFound
	case KindProtocolError:
		return ErrProtocol
	case KindEndOfBufferNoTrailer:
		return ErrEndOfBufferNoTrailer
	default:
		return nil
	}
}

// ParseError reports where a frame failed to parse.
//
// Index is relative to the unit frame header (the header byte is index 0).
// Frame is the offset of that header in the buffer handed to the extractor, or
// -1 when no header was found. Window is a rendered hex dump around the
// offending byte; it is empty until the extractor attaches it.
type ParseError struct {
	Kind    ErrorKind
	Message string
	Index   int
	Frame   int
	Window  string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Frame >= 0 {
		msg = fmt.Sprintf("%s (byte %d of frame at offset %d)", msg, e.Index, e.Frame)
	}
	if e.Window != "" {
		msg += ": " + e.Window
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}

// Offset returns the absolute position of the offending byte in the buffer
// handed to the extractor.
func (e *ParseError) Offset() int {
	if e.Frame < 0 {
		return e.Index
	}
	return e.Frame + e.Index
}
