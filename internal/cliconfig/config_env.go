package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (UDPSHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("UDPSHIP_HOST"), &cfg.Host)
	s.setString("spool-dir", os.Getenv("UDPSHIP_SPOOL_DIR"), &cfg.SpoolDir)
	s.setString("log-level", os.Getenv("UDPSHIP_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setSeparator("line-separator", os.Getenv("UDPSHIP_LINE_SEPARATOR"), &cfg.LineSeparator); err != nil {
		return err
	}
	if err := s.setIntFromString("port", os.Getenv("UDPSHIP_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setIntFromString("chunk-size", os.Getenv("UDPSHIP_CHUNK_SIZE"), &cfg.ChunkSize); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("UDPSHIP_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("keep-files", os.Getenv("UDPSHIP_KEEP_FILES"), &cfg.KeepFiles)
	s.setBoolFromString("once", os.Getenv("UDPSHIP_ONCE"), &cfg.Once)

	return nil
}
