package protocol

import (
	"fmt"
	"strings"
)

const (
	MaxUnitID   uint8  = 15
	MaxRegionID uint8  = 3
	MaxRow      uint16 = 511
	MaxColumn   uint16 = 511
)

// Hit is one pixel coordinate reported inside a unit frame.
type Hit struct {
	Region uint8  `json:"region" cbor:"region"`
	Row    uint16 `json:"row" cbor:"row"`
	Column uint16 `json:"column" cbor:"column"`
}

func (h Hit) String() string {
	return fmt.Sprintf("reg: %d row: %d col: %d", h.Region, h.Row, h.Column)
}

// Packet is the decoded form of one unit frame. Hits keep arrival order.
type Packet struct {
	UnitID uint8 `json:"unit_id" cbor:"unit_id"`
	Hits   []Hit `json:"hits" cbor:"hits"`
}

func (p Packet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unit: %d hits: %d", p.UnitID, len(p.Hits))
	for _, h := range p.Hits {
		b.WriteString("\n  ")
		b.WriteString(h.String())
	}
	return b.String()
}

// Equal reports whether p and other carry the same unit id and hit sequence.
// A nil and an empty hit list compare equal.
func (p Packet) Equal(other Packet) bool {
	if p.UnitID != other.UnitID || len(p.Hits) != len(other.Hits) {
		return false
	}
	for i := range p.Hits {
		if p.Hits[i] != other.Hits[i] {
			return false
		}
	}
	return true
}
