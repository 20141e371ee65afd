package protocol

import "testing"

func TestHitAssemblyKnownTriplets(t *testing.T) {
	cases := []struct {
		words [3]byte
		want  Hit
	}{
		{[3]byte{0x00, 0x50, 0x88}, Hit{Row: 2, Column: 8}},
		{[3]byte{0x25, 0x6E, 0xB1}, Hit{Row: 301, Column: 433}},
		{[3]byte{0x00, 0x40, 0x80}, Hit{Row: 0, Column: 0}},
		{[3]byte{0x3F, 0x7F, 0xBF}, Hit{Row: 511, Column: 511}},
	}
	for _, tc := range cases {
		hits := beginHit(nil, 2, tc.words[0])
		continueRowCol(hits, tc.words[1])
		finishCol(hits, tc.words[2])
		tc.want.Region = 2
		if len(hits) != 1 || hits[0] != tc.want {
			t.Fatalf("triplet % X: got %+v want %+v", tc.words, hits, tc.want)
		}
	}
}

func TestEncodeHitRoundTripAllCoordinates(t *testing.T) {
	for row := uint16(0); row <= MaxRow; row++ {
		for col := uint16(0); col <= MaxColumn; col++ {
			words := EncodeHit(Hit{Row: row, Column: col})
			if Classify(words[0]).Kind != WordData0 || Classify(words[1]).Kind != WordData1 || Classify(words[2]).Kind != WordData2 {
				t.Fatalf("row=%d col=%d encoded to non-data words % X", row, col, words)
			}
			hits := beginHit(nil, 0, words[0])
			continueRowCol(hits, words[1])
			finishCol(hits, words[2])
			if hits[0].Row != row || hits[0].Column != col {
				t.Fatalf("row=%d col=%d decoded as %+v", row, col, hits[0])
			}
		}
	}
}

func TestContinuationWithoutPendingHitPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	continueRowCol(nil, 0x40)
}

func TestHitString(t *testing.T) {
	h := Hit{Region: 1, Row: 301, Column: 433}
	if got := h.String(); got != "reg: 1 row: 301 col: 433" {
		t.Fatalf("unexpected string: %q", got)
	}
}
