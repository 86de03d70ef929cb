package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Output formats supported by the CLI.
const (
	OutputJSON  = "json"
	OutputTable = "table"
)

// Settings holds CLI preferences. Unlike credentials, the settings file is
// optional: a missing file yields defaults.
type Settings struct {
	// CredentialsFile overrides the default credentials location.
	CredentialsFile string `toml:"credentials_file"`
	// Output selects the default output format ("json" or "table").
	Output string `toml:"output"`
}

// DefaultSettings returns settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		Output: OutputJSON,
	}
}

// DefaultSettingsPath returns the default settings file location
// (~/.graphctl/config.toml).
func DefaultSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".graphctl", "config.toml"), nil
}

// LoadSettings reads the TOML settings file. An empty path uses
// DefaultSettingsPath. A missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		var err error
		path, err = DefaultSettingsPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read settings file: %w", err)
	}

	settings := DefaultSettings()
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("config: parse settings file: %w", err)
	}

	if settings.Output != OutputJSON && settings.Output != OutputTable {
		return nil, fmt.Errorf("config: unknown output format %q", settings.Output)
	}
	return settings, nil
}
