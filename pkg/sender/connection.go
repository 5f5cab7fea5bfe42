package sender

import (
	"net"

	"github.com/bft-labs/udpship/internal/domain"
	"github.com/bft-labs/udpship/pkg/log"
)

// ConnState is the lifecycle state of a Connection.
type ConnState int

const (
	ConnUnopened ConnState = iota
	ConnOpen
	ConnClosed
)

// String returns a human-readable representation of the state.
func (s ConnState) String() string {
	switch s {
	case ConnUnopened:
		return "Unopened"
	case ConnOpen:
		return "Open"
	case ConnClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Dialer opens datagram sockets. *net.Dialer satisfies this interface.
type Dialer interface {
	Dial(network, address string) (net.Conn, error)
}

// Connection owns a single datagram socket to one remote address.
//
// The socket is opened at most once and never reopened: Unopened moves to
// Open (or straight to Closed when the dial fails), and Open moves to Closed.
type Connection struct {
	address string
	dialer  Dialer
	logger  log.Logger

	conn  net.Conn
	state ConnState
}

// NewConnection returns an unopened connection to address (udp://host:port).
func NewConnection(address string, dialer Dialer, logger log.Logger) *Connection {
	return &Connection{
		address: address,
		dialer:  dialer,
		logger:  logger,
	}
}

// Address returns the remote address.
func (c *Connection) Address() string {
	return c.address
}

// State returns the current lifecycle state.
func (c *Connection) State() ConnState {
	return c.state
}

// EnsureOpen dials the socket if it has not been opened yet.
// A dial failure is not returned; the connection is left closed so every
// later Send is a no-op.
func (c *Connection) EnsureOpen() {
	if c.state != ConnUnopened {
		return
	}

	conn, err := c.dial()
	if err != nil {
		c.state = ConnClosed
		c.logger.Debug("open datagram socket failed", log.String("address", c.address), log.Err(err))
		return
	}

	c.conn = conn
	c.state = ConnOpen
	c.logger.Debug("opened datagram socket", log.String("address", c.address))
}

func (c *Connection) dial() (net.Conn, error) {
	network, hostport, err := domain.SplitAddress(c.address)
	if err != nil {
		return nil, err
	}
	return c.dialer.Dial(network, hostport)
}

// Send writes b as a single datagram. Send errors are dropped: UDP gives no
// acknowledgment to correlate a failure against.
func (c *Connection) Send(b []byte) {
	if c.state != ConnOpen {
		return
	}
	if _, err := c.conn.Write(b); err != nil {
		c.logger.Debug("datagram dropped", log.String("address", c.address), log.Int("bytes", len(b)), log.Err(err))
	}
}

// Close releases the socket if open. The connection is closed afterwards
// regardless of its previous state, so it can never be opened again.
func (c *Connection) Close() error {
	if c.state != ConnOpen {
		c.state = ConnClosed
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	c.state = ConnClosed
	return err
}
