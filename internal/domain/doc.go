// Package domain contains the core value objects and errors for udpship.
//
// This package has no dependencies on infrastructure concerns (sockets,
// logging, configuration files) and contains only pure values.
//
// # Values
//
//   - [Endpoint]: remote collector host and port, formatted as udp://host:port
//
// Values are immutable after construction and testable without a network.
package domain
