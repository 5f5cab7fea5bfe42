package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	ChunkSize     int    `toml:"chunk_size"`
	LineSeparator string `toml:"line_separator"`
	SpoolDir      string `toml:"spool_dir"`
	KeepFiles     *bool  `toml:"keep_files"`
	Debounce      string `toml:"debounce"`
	Once          *bool  `toml:"once"`
	LogLevel      string `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.udpship/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".udpship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", fc.Host, &cfg.Host)
	s.setString("spool-dir", fc.SpoolDir, &cfg.SpoolDir)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setSeparator("line-separator", fc.LineSeparator, &cfg.LineSeparator); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setInt("port", fc.Port, &cfg.Port)
	s.setInt("chunk-size", fc.ChunkSize, &cfg.ChunkSize)

	s.setBool("keep-files", fc.KeepFiles, &cfg.KeepFiles)
	s.setBool("once", fc.Once, &cfg.Once)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
