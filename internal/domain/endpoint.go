package domain

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Network is the only transport an Endpoint addresses.
const Network = "udp"

// Endpoint identifies the remote collector datagrams are sent to.
type Endpoint struct {
	// Host is the collector hostname or IP address
	Host string

	// Port is the collector UDP port
	Port int
}

// NewEndpoint returns an Endpoint for host and port.
func NewEndpoint(host string, port int) Endpoint {
	return Endpoint{Host: host, Port: port}
}

// Address returns the socket address in the form udp://host:port.
func (e Endpoint) Address() string {
	return fmt.Sprintf("%s://%s:%d", Network, e.Host, e.Port)
}

// HostPort returns host:port suitable for net.Dial. IPv6 hosts are bracketed.
func (e Endpoint) HostPort() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// String implements fmt.Stringer.
func (e Endpoint) String() string {
	return e.Address()
}

// SplitAddress splits an address of the form scheme://host:port into the
// network and host:port arguments expected by net.Dial.
func SplitAddress(addr string) (network, hostport string, err error) {
	scheme, rest, ok := strings.Cut(addr, "://")
	if !ok || scheme == "" || rest == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}

	// Address() does not bracket IPv6 hosts, so split on the last colon.
	i := strings.LastIndex(rest, ":")
	if i < 0 {
		return "", "", fmt.Errorf("%w: missing port in %q", ErrInvalidAddress, addr)
	}
	host := strings.TrimSuffix(strings.TrimPrefix(rest[:i], "["), "]")
	port := rest[i+1:]
	if port == "" {
		return "", "", fmt.Errorf("%w: missing port in %q", ErrInvalidAddress, addr)
	}
	if _, err := strconv.Atoi(port); err != nil {
		return "", "", fmt.Errorf("%w: port %q: %v", ErrInvalidAddress, port, err)
	}

	return scheme, net.JoinHostPort(host, port), nil
}
