package protocol

// DecodeLenient is the unchecked reference decoder. It walks buf once and
// attributes words by kind alone: region headers may arrive in any order,
// stray data words are ignored, and a frame without a trailer is dropped.
// It returns the terminated packets and the index of the last trailer seen.
//
// The grammar-checked path in package frame is canonical; this one is kept to
// benchmark against and to cross-check valid captures.
func DecodeLenient(buf []byte, capacity int) ([]Packet, int) {
	packets := make([]Packet, 0, capacity)
	var (
		current Packet
		inFrame bool
		region  uint8
		pending int // data words still expected for the last hit
		last    int
	)
	for i, b := range buf {
		w := Classify(b)
		switch w.Kind {
		case WordUnitFrameHeader:
			current = Packet{UnitID: w.ID, Hits: []Hit{}}
			inFrame, region, pending = true, 0, 0
		case WordUnitFrameTrailer:
			if inFrame {
				packets = append(packets, current)
				last = i
			}
			inFrame, pending = false, 0
		case WordRegionHeader:
			region = w.ID
		case WordData0:
			if inFrame {
				current.Hits = beginHit(current.Hits, region, b)
				pending = 2
			}
		case WordData1:
			if inFrame && pending == 2 {
				continueRowCol(current.Hits, b)
				pending = 1
			}
		case WordData2:
			if inFrame && pending == 1 {
				finishCol(current.Hits, b)
				pending = 0
			}
		}
	}
	return packets, last
}
