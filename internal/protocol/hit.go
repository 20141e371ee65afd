package protocol

// Hit assembly from a DATA_0, DATA_1, DATA_2 triplet:
//
//	DATA_0 00rr_rrrr  row[8:3]
//	DATA_1 01rr_rccc  row[2:0] col[8:6]
//	DATA_2 10cc_cccc  col[5:0]

func beginHit(hits []Hit, region uint8, data0 byte) []Hit {
	return append(hits, Hit{
		Region: region,
		Row:    uint16(data0&0x3F) << 3,
	})
}

func continueRowCol(hits []Hit, data1 byte) {
	h := lastHit(hits)
	h.Row |= uint16(data1&0x38) >> 3
	h.Column = uint16(data1&0x07) << 6
}

func finishCol(hits []Hit, data2 byte) {
	h := lastHit(hits)
	h.Column |= uint16(data2 & 0x3F)
}

func lastHit(hits []Hit) *Hit {
	if len(hits) == 0 {
		panic("protocol: data word continuation without a pending hit")
	}
	return &hits[len(hits)-1]
}

// EncodeHit returns the DATA_0, DATA_1, DATA_2 words for h. Region is carried
// by the enclosing region header and is not part of the triplet.
func EncodeHit(h Hit) [3]byte {
	return [3]byte{
		data0Pattern | byte(h.Row>>3)&0x3F,
		data1Pattern | byte(h.Row&0x07)<<3 | byte(h.Column>>6)&0x07,
		data2Pattern | byte(h.Column)&0x3F,
	}
}
