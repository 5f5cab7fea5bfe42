// Package sender pushes line-protocol payloads to a collector over UDP.
//
// Delivery is fire-and-forget. The socket is opened on the first Write and
// released by Close. Payloads larger than the chunk size are split into
// several datagrams at line separators, and a record is never split across
// two datagrams. Socket and send failures are absorbed: Write and IsSuccess
// always report success, meaning "dispatched", not "delivered".
//
// # Usage
//
//	s := sender.NewUDPSender("localhost", 8089,
//	    sender.WithChunkSize(1400),
//	    sender.WithLogger(logger),
//	)
//	defer s.Close()
//
//	s.Write("cpu,host=server1 usage_idle=97.5\nmem,host=server1 used=1024i")
//
// A UDPSender is not safe for concurrent use. Callers writing from several
// goroutines must serialize calls.
//
// # Custom Senders
//
// Implement the Sender interface to send to alternative destinations.
//
// # Version
//
// Current version: 2.0.0
// Minimum compatible version: 2.0.0
//
// See version.go for version constants that can be used programmatically.
package sender
