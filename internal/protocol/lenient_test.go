package protocol

import "testing"

func TestDecodeLenientAcceptsAnyRegionOrder(t *testing.T) {
	buf := []byte{
		0xD4,
		RegionHeader2, 0x00, 0x50, 0x88,
		RegionHeader0, 0x25, 0x6E, 0xB1,
		UnitFrameTrailer,
		0xD5, RegionHeader0, 0x00, // cut off
	}
	packets, last := DecodeLenient(buf, 4)
	if len(packets) != 1 || last != 9 {
		t.Fatalf("unexpected result: packets=%+v last=%d", packets, last)
	}
	want := []Hit{{Region: 2, Row: 2, Column: 8}, {Region: 0, Row: 301, Column: 433}}
	if !packets[0].Equal(Packet{UnitID: 4, Hits: want}) {
		t.Fatalf("unexpected packet: %s", packets[0])
	}
}

func TestDecodeLenientMatchesGrammarOnValidFrames(t *testing.T) {
	in := []Packet{
		{UnitID: 0, Hits: []Hit{{Region: 0, Row: 2, Column: 8}, {Region: 3, Row: 100, Column: 200}}},
		{UnitID: 7},
		{UnitID: 15, Hits: []Hit{{Region: 1, Row: 511, Column: 511}}},
	}
	buf, err := EncodeFrames(in)
	if err != nil {
		t.Fatalf("encode frames: %v", err)
	}
	packets, last := DecodeLenient(buf, 0)
	if last != len(buf)-1 || len(packets) != len(in) {
		t.Fatalf("unexpected result: %d packets last=%d", len(packets), last)
	}
	for i := range in {
		if !packets[i].Equal(in[i]) {
			t.Fatalf("packet %d: got %s want %s", i, packets[i], in[i])
		}
	}
}

func TestDecodeLenientIgnoresStrayContinuations(t *testing.T) {
	buf := []byte{0xD1, RegionHeader0, 0x50, 0x88, UnitFrameTrailer}
	packets, _ := DecodeLenient(buf, 0)
	if len(packets) != 1 || len(packets[0].Hits) != 0 {
		t.Fatalf("unexpected result: %+v", packets)
	}
}
