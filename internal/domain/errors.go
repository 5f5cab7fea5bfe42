package domain

import "errors"

// Domain errors represent error conditions in the udpship domain.
// These errors can be checked with errors.Is.
var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("udpship: invalid configuration")

	// ErrInvalidAddress is returned when an address string cannot be split
	// into a network and a host:port pair.
	ErrInvalidAddress = errors.New("udpship: invalid address")
)
