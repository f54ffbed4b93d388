package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/integrityforge/internal/constants"
	"github.com/mrz1836/integrityforge/internal/errors"
)

// GlobalConfigDir returns the path to the global integrityforge directory,
// holding the global config file, logs, and signing keys. INTEGRITYFORGE_HOME
// overrides the location; the default is ~/.integrityforge. This is the
// single home resolver — every component (config, logger, key manager) goes
// through it so the override moves everything together.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	if appHome := os.Getenv(constants.EnvPrefix + "_HOME"); appHome != "" {
		return appHome, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AppHome), nil
}

// ProjectConfigDir returns the relative path to the project configuration
// directory. This is always .integrityforge relative to the project root.
func ProjectConfigDir() string {
	return constants.ProjectConfigDir
}

// GlobalConfigPath returns the full path to the global configuration file.
// This is typically ~/.integrityforge/config.yaml on Unix systems.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the relative path to the project configuration
// file. This is always .integrityforge/config.yaml relative to the project
// root.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), constants.ConfigFileName)
}

// GlobalLogsDir returns the directory holding the rotating CLI log file.
func GlobalLogsDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir), nil
}

// GlobalKeysDir returns the directory holding the native signing key. The
// attestation.key_dir setting, when non-empty, takes precedence.
func GlobalKeysDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.KeysDir), nil
}
