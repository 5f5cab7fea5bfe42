package sender

import (
	"net"
	"time"
)

// fakeConn records every datagram written to it.
type fakeConn struct {
	writes   [][]byte
	writeErr error
	closeErr error
	closed   int
}

func (c *fakeConn) Write(b []byte) (int, error) {
	c.writes = append(c.writes, append([]byte(nil), b...))
	if c.writeErr != nil {
		return 0, c.writeErr
	}
	return len(b), nil
}

func (c *fakeConn) Close() error {
	c.closed++
	return c.closeErr
}

func (c *fakeConn) sent() []string {
	out := make([]string, len(c.writes))
	for i, w := range c.writes {
		out[i] = string(w)
	}
	return out
}

func (c *fakeConn) Read(b []byte) (int, error)         { return 0, nil }
func (c *fakeConn) LocalAddr() net.Addr                { return &net.UDPAddr{} }
func (c *fakeConn) RemoteAddr() net.Addr               { return &net.UDPAddr{} }
func (c *fakeConn) SetDeadline(t time.Time) error      { return nil }
func (c *fakeConn) SetReadDeadline(t time.Time) error  { return nil }
func (c *fakeConn) SetWriteDeadline(t time.Time) error { return nil }

// fakeDialer hands out a single fakeConn, or fails with err.
type fakeDialer struct {
	conn *fakeConn
	err  error

	dials   int
	network string
	address string
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{conn: &fakeConn{}}
}

func (d *fakeDialer) Dial(network, address string) (net.Conn, error) {
	d.dials++
	d.network = network
	d.address = address
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}
