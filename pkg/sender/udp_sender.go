package sender

import (
	"fmt"
	"strings"

	protocol "github.com/influxdata/line-protocol"

	"github.com/bft-labs/udpship/internal/domain"
	"github.com/bft-labs/udpship/pkg/chunk"
	"github.com/bft-labs/udpship/pkg/metric"
)

// UDPSender implements Sender over a lazily opened UDP socket.
type UDPSender struct {
	endpoint      domain.Endpoint
	chunkSize     int
	lineSeparator string

	conn       *Connection
	parameters map[string]interface{}
}

var _ Sender = (*UDPSender)(nil)

// NewUDPSender creates a sender for the collector at host:port.
// No socket is opened until the first non-empty Write.
func NewUDPSender(host string, port int, opts ...Option) *UDPSender {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	endpoint := domain.NewEndpoint(host, port)
	return &UDPSender{
		endpoint:      endpoint,
		chunkSize:     o.chunkSize,
		lineSeparator: o.lineSeparator,
		conn:          NewConnection(endpoint.Address(), o.dialer, o.logger),
	}
}

// Endpoint returns the collector endpoint.
func (s *UDPSender) Endpoint() domain.Endpoint {
	return s.endpoint
}

// Address returns the socket address, udp://host:port.
func (s *UDPSender) Address() string {
	return s.endpoint.Address()
}

// ChunkSize returns the configured chunk size in bytes.
func (s *UDPSender) ChunkSize() int {
	return s.chunkSize
}

// LineSeparator returns the configured record delimiter.
func (s *UDPSender) LineSeparator() string {
	return s.lineSeparator
}

// State returns the lifecycle state of the underlying connection.
func (s *UDPSender) State() ConnState {
	return s.conn.State()
}

// Write sends payload as one or more datagrams and always returns true.
// An empty payload sends nothing and does not open the socket.
func (s *UDPSender) Write(payload string) bool {
	if len(payload) == 0 {
		return true
	}

	s.conn.EnsureOpen()
	chunk.Each(payload, s.lineSeparator, s.chunkSize, func(c string) {
		s.conn.Send([]byte(c))
	})
	return true
}

// WriteMetrics encodes metrics as line protocol, one record per metric
// terminated by the configured line separator, and writes them. Only
// encoding errors are returned; transport failures are absorbed as in Write.
func (s *UDPSender) WriteMetrics(metrics ...protocol.Metric) error {
	lines, err := metric.EncodeLines(metrics...)
	if err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}
	s.Write(strings.Join(lines, s.lineSeparator) + s.lineSeparator)
	return nil
}

// IsSuccess always returns true: there is no delivery confirmation over UDP.
func (s *UDPSender) IsSuccess() bool {
	return true
}

// SetParameters stores caller-defined parameters alongside the sender.
func (s *UDPSender) SetParameters(parameters map[string]interface{}) {
	s.parameters = parameters
}

// Parameters returns the parameters set with SetParameters.
func (s *UDPSender) Parameters() map[string]interface{} {
	return s.parameters
}

// Close releases the socket. The sender sends nothing after Close.
func (s *UDPSender) Close() error {
	return s.conn.Close()
}
