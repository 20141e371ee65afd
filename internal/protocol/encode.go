package protocol

import "fmt"

// AppendFrame appends the wire encoding of p to dst: the unit frame header,
// all four region headers in order with each region's hits as data triplets,
// and the trailer. Hits must be grouped by non-decreasing region.
func AppendFrame(dst []byte, p Packet) ([]byte, error) {
	if p.UnitID > MaxUnitID {
		return dst, fmt.Errorf("%w: unit id %d out of range", ErrUnencodable, p.UnitID)
	}
	for i, h := range p.Hits {
		if h.Region > MaxRegionID || h.Row > MaxRow || h.Column > MaxColumn {
			return dst, fmt.Errorf("%w: hit %d (%s) out of range", ErrUnencodable, i, h)
		}
		if i > 0 && h.Region < p.Hits[i-1].Region {
			return dst, fmt.Errorf("%w: hit %d region %d follows region %d", ErrUnencodable, i, h.Region, p.Hits[i-1].Region)
		}
	}

	dst = append(dst, UnitFrameHeader0|p.UnitID)
	next := 0
	for region := uint8(0); region <= MaxRegionID; region++ {
		dst = append(dst, RegionHeader0|region)
		for next < len(p.Hits) && p.Hits[next].Region == region {
			words := EncodeHit(p.Hits[next])
			dst = append(dst, words[:]...)
			next++
		}
	}
	return append(dst, UnitFrameTrailer), nil
}

// EncodeFrames concatenates the wire encoding of packets.
func EncodeFrames(packets []Packet) ([]byte, error) {
	var out []byte
	for i, p := range packets {
		var err error
		out, err = AppendFrame(out, p)
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
	}
	return out, nil
}
