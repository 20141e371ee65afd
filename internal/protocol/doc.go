// Package protocol owns the MOSS readout wire contract and its parsing primitives.
//
// Ownership boundary:
// - byte -> word classification
// - hit assembly from data word triplets
// - unit frame grammar (state machine)
// - parse error taxonomy
// - frame encoding (inverse of decoding)
// - the unchecked lenient reference decoder
//
// Buffer scanning, multi-frame batching and chunked reads live in the frame and
// stream subpackages; nothing in this package performs I/O.
package protocol
