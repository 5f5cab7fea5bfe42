package chunk

import "strings"

// DefaultSize is the default chunk size in bytes, below the 65507 byte
// UDP payload limit with room for the record that ends a chunk.
const DefaultSize = 60000

// Each calls fn for every chunk of data, in order.
//
// The scan for a separator starts at byte offset limit, never earlier. An
// empty separator or a non-positive limit disables splitting.
func Each(data, sep string, limit int, fn func(chunk string)) {
	for len(data) > 0 {
		if len(data) <= limit || limit <= 0 || sep == "" {
			fn(data)
			return
		}

		i := strings.Index(data[limit:], sep)
		if i < 0 {
			// No separator past the limit: the record is sent whole.
			fn(data)
			return
		}
		end := limit + i

		fn(data[:end])
		data = data[end+len(sep):]
	}
}

// Split returns the chunks of data. It returns nil for empty data.
func Split(data, sep string, limit int) []string {
	var chunks []string
	Each(data, sep, limit, func(c string) {
		chunks = append(chunks, c)
	})
	return chunks
}

// Count returns the number of chunks Split would produce.
func Count(data, sep string, limit int) int {
	n := 0
	Each(data, sep, limit, func(string) { n++ })
	return n
}

// Join reassembles chunks with one separator between consecutive chunks.
func Join(chunks []string, sep string) string {
	return strings.Join(chunks, sep)
}
