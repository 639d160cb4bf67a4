package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the portal configuration loaded from a TOML file. CLI flags
// cover deploy-time wiring; this file covers the team-level settings that
// operators edit without redeploying.
type AppConfig struct {
	// Admins lists the email addresses whose sessions carry the admin role
	Admins []string `toml:"admins"`

	// Portal holds display settings
	Portal PortalConfig `toml:"portal"`
}

// PortalConfig holds display settings of the portal
type PortalConfig struct {
	// Name shown in notification mail subjects and the UI
	Name string `toml:"name"`
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	seen := make(map[string]bool)
	for _, email := range a.Admins {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || !strings.Contains(email, "@") {
			return goerr.Wrap(ErrInvalidConfig, "admin entry is not an email address", goerr.V("entry", email))
		}
		if seen[email] {
			return goerr.Wrap(ErrDuplicateAdmin, "duplicate admin entry", goerr.V("email", email))
		}
		seen[email] = true
	}
	return nil
}

// LoadAppConfiguration loads the portal configuration from a TOML file.
// A missing path yields an empty configuration.
func LoadAppConfiguration(path string) (*AppConfig, error) {
	if path == "" {
		return &AppConfig{}, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(ErrConfigNotFound, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}
