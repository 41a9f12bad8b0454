// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultBankDir returns the default directory for question bank files.
func DefaultBankDir() string {
	return filepath.Join(XDGConfigHome(), "persona", "banks")
}

// DefaultBankPath builds the default bank path for a bank name.
func DefaultBankPath(name string) string {
	return filepath.Join(DefaultBankDir(), name+".json")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "persona", "config.toml")
}
