package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrMissingField indicates a required credentials field is absent or empty.
var ErrMissingField = errors.New("config: missing required field")

// Credentials holds the application registration used for the
// client-credentials grant. All fields are required.
type Credentials struct {
	TenantID     string   `json:"tenant_id"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scope        []string `json:"scope"`
}

// DefaultCredentialsPath returns the default credentials file location
// (~/.graphctl/auth.json).
func DefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".graphctl", "auth.json"), nil
}

// LoadCredentials reads and validates a credentials file.
// An empty path uses DefaultCredentialsPath.
func LoadCredentials(path string) (*Credentials, error) {
	if path == "" {
		var err error
		path, err = DefaultCredentialsPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("config: parse credentials file: %w", err)
	}

	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Validate checks that every required field is present.
func (c *Credentials) Validate() error {
	if c.TenantID == "" {
		return fmt.Errorf("%w: tenant_id", ErrMissingField)
	}
	if c.ClientID == "" {
		return fmt.Errorf("%w: client_id", ErrMissingField)
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("%w: client_secret", ErrMissingField)
	}
	if len(c.Scope) == 0 {
		return fmt.Errorf("%w: scope", ErrMissingField)
	}
	return nil
}
