package sender

// Sender transmits line-protocol payloads to a collector.
type Sender interface {
	// Write dispatches payload. It reports whether the payload was handed
	// to the transport, not whether it was delivered.
	Write(payload string) bool

	// IsSuccess reports the outcome of the last Write.
	IsSuccess() bool

	// Close releases transport resources. It is safe to call more than once.
	Close() error
}
