package config

import (
	"fmt"
	"os"
)

// InitConfig writes a default configuration file at the default location,
// failing if one already exists unless force is set. Returns the path
// written to.
func InitConfig(force bool) (string, error) {
	return InitConfigToPath(GetDefaultConfigPath(), force)
}

// InitConfigToPath writes a default configuration file at path, failing if
// one already exists unless force is set.
func InitConfigToPath(path string, force bool) (string, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", path)
		}
	}

	if err := SaveConfig(GetDefaultConfig(), path); err != nil {
		return "", err
	}

	return path, nil
}
