package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/udpship/internal/domain"
	"github.com/bft-labs/udpship/pkg/chunk"
	"github.com/bft-labs/udpship/pkg/sender"
)

// DefaultPort is the InfluxDB UDP listener port.
const DefaultPort = 8089

// Config holds CLI configuration for udpship.
type Config struct {
	Host          string
	Port          int
	ChunkSize     int
	LineSeparator string

	SpoolDir  string
	KeepFiles bool
	Debounce  time.Duration
	Once      bool

	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Host:          "localhost",
		Port:          DefaultPort,
		ChunkSize:     chunk.DefaultSize,
		LineSeparator: sender.DefaultLineSeparator,
		Debounce:      100 * time.Millisecond,
		LogLevel:      "info",
	}
}

// Endpoint returns the collector endpoint described by the config.
func (c *Config) Endpoint() domain.Endpoint {
	return domain.NewEndpoint(c.Host, c.Port)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: host is required", domain.ErrInvalidConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", domain.ErrInvalidConfig, c.Port)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", domain.ErrInvalidConfig)
	}
	if c.LineSeparator == "" {
		return fmt.Errorf("%w: line separator is required", domain.ErrInvalidConfig)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}

// ParseSeparator interprets Go escape sequences such as \n or \r\n, so a
// separator can be given on the command line or in a file.
func ParseSeparator(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	sep, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return "", fmt.Errorf("parse separator %q: %w", s, err)
	}
	return sep, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setSeparator parses and sets a line separator if not empty and flag not changed.
func (s *configSetter) setSeparator(flag, value string, dst *string) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	sep, err := ParseSeparator(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = sep
	return nil
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
