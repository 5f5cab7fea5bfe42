// Package chunk splits line-delimited payloads into datagram-sized pieces.
//
// A payload is a sequence of records separated by a line separator. Chunks
// are cut only at a separator found at or beyond the size limit, so a record
// is never split across two chunks. When no separator follows the limit the
// remaining data is emitted whole, even if that exceeds the limit.
//
// # Usage
//
//	for _, c := range chunk.Split(payload, "\n", 60000) {
//	    conn.Send([]byte(c))
//	}
//
// Or stream chunks without building a slice:
//
//	chunk.Each(payload, "\n", 60000, func(c string) {
//	    conn.Send([]byte(c))
//	})
//
// Joining the chunks with the separator reproduces the payload, except that
// a single trailing separator is consumed:
//
//	chunk.Join(chunk.Split(payload, sep, limit), sep)
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package chunk
