package frame

import (
	"fmt"
	"strings"
)

const (
	windowAfter     = 10
	windowMaxBefore = 64
)

// Window renders a hex dump of buf for diagnostics: the frame bytes from start
// up to at (capped to the last 64), the byte at at in brackets, then up to 10
// following bytes. When at is past the end of buf the marker reads [--].
func Window(buf []byte, start, at int) string {
	if start < 0 {
		start = 0
	}
	if at > len(buf) {
		at = len(buf)
	}
	var b strings.Builder
	from := start
	if at-from > windowMaxBefore {
		from = at - windowMaxBefore
		b.WriteString(".. ")
	}
	for i := from; i < at; i++ {
		fmt.Fprintf(&b, "%02X ", buf[i])
	}
	if at >= len(buf) {
		b.WriteString("[--]")
		return b.String()
	}
	fmt.Fprintf(&b, "[%02X]", buf[at])
	end := min(at+1+windowAfter, len(buf))
	for i := at + 1; i < end; i++ {
		fmt.Fprintf(&b, " %02X", buf[i])
	}
	if end < len(buf) {
		b.WriteString(" ..")
	}
	return b.String()
}
