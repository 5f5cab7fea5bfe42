// Package udpship pushes InfluxDB line protocol to a collector over UDP.
//
// Example usage:
//
//	s := udpship.New("localhost", 8089)
//	defer s.Close()
//	s.Write("cpu,host=server1 usage_idle=97.5\nmem,host=server1 used=1024i")
//
// Delivery is fire-and-forget. See package pkg/sender for details.
package udpship

import (
	"github.com/bft-labs/udpship/internal/domain"
	"github.com/bft-labs/udpship/pkg/chunk"
	"github.com/bft-labs/udpship/pkg/sender"
)

// Endpoint identifies a remote collector.
type Endpoint = domain.Endpoint

// Sender is the transport interface implemented by *UDPSender.
type Sender = sender.Sender

// UDPSender sends line-protocol payloads as UDP datagrams.
type UDPSender = sender.UDPSender

// Option configures a UDPSender.
type Option = sender.Option

// DefaultChunkSize is the default maximum datagram payload size in bytes.
const DefaultChunkSize = chunk.DefaultSize

// New creates a UDP sender for host:port. The socket is opened on the
// first non-empty Write; Close must be called to release it.
func New(host string, port int, opts ...Option) *UDPSender {
	return sender.NewUDPSender(host, port, opts...)
}

// Re-exported options.
var (
	WithChunkSize     = sender.WithChunkSize
	WithLineSeparator = sender.WithLineSeparator
	WithDialer        = sender.WithDialer
	WithLogger        = sender.WithLogger
)
