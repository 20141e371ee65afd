package protocol

import "fmt"

// Wire constants for the MOSS readout stream.
const (
	Idle             byte = 0xFF
	UnitFrameTrailer byte = 0xE0
	Delimiter        byte = 0xFA

	RegionHeader0 byte = 0xC0
	RegionHeader1 byte = 0xC1
	RegionHeader2 byte = 0xC2
	RegionHeader3 byte = 0xC3

	UnitFrameHeader0 byte = 0xD0

	regionHeaderMask    byte = 0xFC
	unitFrameHeaderMask byte = 0xF0
	dataMask            byte = 0xC0

	data0Pattern byte = 0x00
	data1Pattern byte = 0x40
	data2Pattern byte = 0x80
)

// WordKind is the protocol symbol a single byte decodes to.
type WordKind uint8

const (
	WordUnknown WordKind = iota
	WordIdle
	WordUnitFrameHeader
	WordUnitFrameTrailer
	WordRegionHeader
	WordData0
	WordData1
	WordData2
	WordDelimiter
)

func (k WordKind) String() string {
	switch k {
	case WordIdle:
		return "IDLE"
	case WordUnitFrameHeader:
		return "UNIT_FRAME_HEADER"
	case WordUnitFrameTrailer:
		return "UNIT_FRAME_TRAILER"
	case WordRegionHeader:
		return "REGION_HEADER"
	case WordData0:
		return "DATA_0"
	case WordData1:
		return "DATA_1"
	case WordData2:
		return "DATA_2"
	case WordDelimiter:
		return "DELIMITER"
	default:
		return "UNKNOWN"
	}
}

// Word is one classified byte. ID carries the unit id for headers and the
// region id for region headers; it is zero for every other kind.
type Word struct {
	Kind WordKind
	ID   uint8
}

func (w Word) String() string {
	switch w.Kind {
	case WordUnitFrameHeader, WordRegionHeader:
		return fmt.Sprintf("%s_%d", w.Kind, w.ID)
	default:
		return w.Kind.String()
	}
}

// Classify maps b to its protocol word. Exact matches are tested before masked
// ranges so that the 0b11xx_xxxx framing space never aliases a data word.
// Bytes in the framing space that match no pattern (0xC4-0xCF, 0xE1-0xEF,
// 0xF0-0xF9, 0xFB-0xFE) classify as WordUnknown.
func Classify(b byte) Word {
	switch b {
	case Idle:
		return Word{Kind: WordIdle}
	case UnitFrameTrailer:
		return Word{Kind: WordUnitFrameTrailer}
	case Delimiter:
		return Word{Kind: WordDelimiter}
	}
	switch {
	case b&regionHeaderMask == RegionHeader0:
		return Word{Kind: WordRegionHeader, ID: b & 0x03}
	case b&unitFrameHeaderMask == UnitFrameHeader0:
		return Word{Kind: WordUnitFrameHeader, ID: b & 0x0F}
	case b&dataMask == data0Pattern:
		return Word{Kind: WordData0}
	case b&dataMask == data1Pattern:
		return Word{Kind: WordData1}
	case b&dataMask == data2Pattern:
		return Word{Kind: WordData2}
	}
	return Word{Kind: WordUnknown}
}

// IsUnitFrameHeader reports whether b is a unit frame header byte (0xD0-0xDF).
func IsUnitFrameHeader(b byte) bool {
	return b&unitFrameHeaderMask == UnitFrameHeader0
}
