package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

var (
	// ErrNotFound is returned by Load when no config file exists and the user
	// declined to create one.
	ErrNotFound = errors.New("config file not found")
	// ErrFileParse wraps TOML decoding failures.
	ErrFileParse = errors.New("config file is not valid TOML")
	// ErrFileRead wraps failures opening or reading the file.
	ErrFileRead = errors.New("config file cannot be read")
	// ErrMissingProp is returned when [props].default_method is absent.
	ErrMissingProp = errors.New(`config file has no [props] "default_method"`)
)

// Config represents the zero_pass configuration file.
type Config struct {
	Props   PropsConfig   `toml:"props"`
	History HistoryConfig `toml:"history,omitempty"`
	Log     LogConfig     `toml:"log,omitempty"`
}

// PropsConfig is the [props] table.
type PropsConfig struct {
	DefaultMethod string `toml:"default_method"`
	Lang          string `toml:"lang"`
}

// HistoryConfig selects where run history is recorded.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type HistoryConfig struct {
	Type    string `toml:"type,omitempty"`     // "sqlite", "memory" or "none"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// LogConfig holds logging settings.
type LogConfig struct {
	Dir string `toml:"dir,omitempty"`
}

// NewConfig returns the configuration written on first run.
func NewConfig() *Config {
	return &Config{
		Props: PropsConfig{
			DefaultMethod: "Base64",
			Lang:          "EnUs",
		},
	}
}

// Validate checks the properties every run relies on.
func (c *Config) Validate() error {
	if c.Props.DefaultMethod == "" {
		return ErrMissingProp
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileParse, err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

// Load reads the config at path. When the file does not exist, confirm is
// asked whether to create it; on consent seed (or NewConfig when seed is nil)
// is written and returned, otherwise ErrNotFound is returned.
func Load(path string, seed *Config, confirm func() (bool, error)) (*Config, error) {
	cfg, err := ReadFromFile(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	ok, err := confirm()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	cfg = seed
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := Init(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
