package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the persisted settings file.
const ConfigFileName = "confstate.ini"

// envConfigDir overrides the platform config directory when set.
const envConfigDir = "CONFSTATE_CONFIG_DIR"

// ConfigDir returns the directory where the confstate config file lives.
// The CONFSTATE_CONFIG_DIR environment variable takes precedence; otherwise
// the platform config directory (e.g. ~/.config on Linux) is used.
func ConfigDir() (string, error) {
	if dir := os.Getenv(envConfigDir); dir != "" {
		return dir, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error getting config directory: %w", err)
	}

	return filepath.Join(configDir, "confstate"), nil
}

// DefaultConfigFile returns the full path of the default settings file.
func DefaultConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}
