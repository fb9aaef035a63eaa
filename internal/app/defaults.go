package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// environment lists the variables that override the defaults.
type environment struct {
	ConfigPath string `env:"ZERO_PASS_CONFIG_PATH"`
	Home       string `env:"ZERO_PASS_HOME"`
	Lang       string `env:"LANG"`
}

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - ZERO_PASS_CONFIG_PATH: config file location (default: ~/.config/zero_pass/config.toml)
//   - ZERO_PASS_HOME: base directory for logs and history (default: ~/.local/share/zero_pass)
//   - LANG: locale used until the config file has been read
func GetDefaults() (map[string]string, error) {
	e, err := env.ParseAs[environment]()
	if err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	configPath := e.ConfigPath
	baseDir := e.Home
	if configPath == "" || baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		if configPath == "" {
			configPath = filepath.Join(homeDir, ".config", "zero_pass", "config.toml")
		}
		if baseDir == "" {
			baseDir = filepath.Join(homeDir, ".local", "share", "zero_pass")
		}
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
		"lang":        e.Lang,
	}, nil
}
