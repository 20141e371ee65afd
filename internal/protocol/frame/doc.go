// Package frame locates MOSS unit frames in in-memory buffers and decodes them.
//
// Every decoder here is synchronous and owns its cursor; input buffers are
// never modified. Returned trailer indexes are relative to the buffer the
// caller passed in.
package frame
