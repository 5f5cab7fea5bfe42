// Package log provides a logging abstraction for udpship components.
//
// The UDP sender never returns transport errors to its caller. It reports
// them through this Logger at debug level instead, so a silent drop can
// still be diagnosed. The default is NoopLogger.
//
// # Usage
//
// Use the provided zerolog adapter:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	s := sender.NewUDPSender("localhost", 8089, sender.WithLogger(logger))
//
// # Custom Loggers
//
// Implement the Logger interface to integrate with your existing
// logging infrastructure.
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.1.0
package log
