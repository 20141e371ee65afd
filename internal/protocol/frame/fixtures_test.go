package frame

import "github.com/danmuck/mossdecode/internal/protocol"

const (
	idle    = protocol.Idle
	trailer = protocol.UnitFrameTrailer
	region0 = protocol.RegionHeader0
	region1 = protocol.RegionHeader1
	region2 = protocol.RegionHeader2
	region3 = protocol.RegionHeader3
)

func fakeEventSimple() []byte {
	return []byte{
		0xD0, idle, idle,
		region0,
		0x00, 0x50, 0x88, // row 2, col 8
		region1,
		0x25, 0x6E, 0xB1, // row 301, col 433
		region2,
		region3,
		0x00, 0x50, 0x88, // row 2, col 8
		trailer,
	}
}

func fakeEventSimplePacket() protocol.Packet {
	return protocol.Packet{UnitID: 0, Hits: []protocol.Hit{
		{Region: 0, Row: 2, Column: 8},
		{Region: 1, Row: 301, Column: 433},
		{Region: 3, Row: 2, Column: 8},
	}}
}

func fakeMultipleEvents() []byte {
	out := fakeEventSimple()
	second := fakeEventSimple()
	second[0] = 0xD1
	out = append(out, second...)
	out = append(out,
		0xD2, // unit 2, empty
		region0, region1, region2, idle, region3,
		trailer,
		0xD3, // unit 3, simple hits
		region0, 0x00, 0b0100_0000, 0b1000_0000, // row 0 col 0
		region1, 0x00, 0b0100_1000, 0b1000_0001, // row 1 col 1
		region2, 0x00, 0b0101_0000, 0b1000_0010, // row 2 col 2
		region3, 0x00, 0b0101_1000, 0b1000_0011, // row 3 col 3
		idle,
		trailer,
	)
	return out
}

func fakeMultiplePackets() []protocol.Packet {
	first := fakeEventSimplePacket()
	second := fakeEventSimplePacket()
	second.UnitID = 1
	return []protocol.Packet{
		first,
		second,
		{UnitID: 2},
		{UnitID: 3, Hits: []protocol.Hit{
			{Region: 0, Row: 0, Column: 0},
			{Region: 1, Row: 1, Column: 1},
			{Region: 2, Row: 2, Column: 2},
			{Region: 3, Row: 3, Column: 3},
		}},
	}
}

func assertPackets(t interface {
	Helper()
	Fatalf(string, ...any)
}, got, want []protocol.Packet) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d packets, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("packet %d mismatch:\n got %s\nwant %s", i, got[i], want[i])
		}
	}
}
