package sender

import (
	"net"

	"github.com/bft-labs/udpship/pkg/chunk"
	"github.com/bft-labs/udpship/pkg/log"
)

// Option configures optional behavior of a UDPSender.
type Option func(*options)

type options struct {
	chunkSize     int
	lineSeparator string
	dialer        Dialer
	logger        log.Logger
}

func defaultOptions() options {
	return options{
		chunkSize:     chunk.DefaultSize,
		lineSeparator: DefaultLineSeparator,
		dialer:        &net.Dialer{},
		logger:        log.NewNoopLogger(),
	}
}

// WithChunkSize sets the target maximum datagram payload size in bytes.
// Defaults to 60000.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithLineSeparator sets the record delimiter. Defaults to the platform newline.
func WithLineSeparator(sep string) Option {
	return func(o *options) {
		o.lineSeparator = sep
	}
}

// WithDialer sets the dialer used to open the socket.
func WithDialer(d Dialer) Option {
	return func(o *options) {
		if d != nil {
			o.dialer = d
		}
	}
}

// WithLogger sets a logger for dropped datagrams and socket failures.
// If not provided, a no-op logger is used (no output).
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
