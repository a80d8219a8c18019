// Package config loads the YAML configuration of the UI runtime.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/zeusui/internal/core/observability/log"
)

var (
	ErrInvalidEncoding = errors.New("invalid log encoding")
	ErrInvalidWindow   = errors.New("default window name is empty")
	ErrInvalidMirror   = errors.New("invalid mirror settings")
)

// Config is the root of the configuration file.
type Config struct {
	Log    Log    `json:"log" yaml:"log"`
	Style  Style  `json:"style" yaml:"style"`
	Mirror Mirror `json:"mirror" yaml:"mirror"`
}

// Log selects the logger level and encoder.
type Log struct {
	Level    string `json:"level" yaml:"level"`
	Encoding string `json:"encoding" yaml:"encoding"`
}

// Style configures the style registry.
type Style struct {
	DefaultWindow string `json:"default_window" yaml:"default_window"`
}

// Mirror configures the websocket DOM mirror.
type Mirror struct {
	Enabled      bool          `json:"enabled" yaml:"enabled"`
	Addr         string        `json:"addr" yaml:"addr"`
	Path         string        `json:"path" yaml:"path"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: Log{
			Level:    "info",
			Encoding: "console",
		},
		Style: Style{
			DefaultWindow: "default",
		},
		Mirror: Mirror{
			Enabled:      false,
			Addr:         "127.0.0.1:8089",
			Path:         "/dom",
			WriteTimeout: 5 * time.Second,
		},
	}
}

// Parse decodes YAML from r on top of Default and validates the result.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Encoding) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEncoding, c.Log.Encoding)
	}
	if strings.TrimSpace(c.Style.DefaultWindow) == "" {
		return ErrInvalidWindow
	}
	if c.Mirror.Enabled {
		if c.Mirror.Addr == "" {
			return fmt.Errorf("%w: empty addr", ErrInvalidMirror)
		}
		if !strings.HasPrefix(c.Mirror.Path, "/") {
			return fmt.Errorf("%w: path %q must start with /", ErrInvalidMirror, c.Mirror.Path)
		}
		if c.Mirror.WriteTimeout <= 0 {
			return fmt.Errorf("%w: write_timeout must be positive", ErrInvalidMirror)
		}
	}
	return nil
}

// LoggerOptions converts the log section for log.NewWithOptions.
func (c Config) LoggerOptions() log.Options {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		lvl = log.LevelInfo
	}
	return log.Options{Level: lvl, Encoding: strings.ToLower(c.Log.Encoding)}
}
