//go:build !windows

package sender

// DefaultLineSeparator is the platform newline.
const DefaultLineSeparator = "\n"
