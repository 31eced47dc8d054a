// Package config resolves on-disk locations and runtime settings.
package config

import (
	"os"
	"path/filepath"
)

// Environment variables overriding the default locations.
const (
	EnvBoopHome = "BOOP_DATA_DIR"
	EnvBoopDB   = "BOOP_DB_PATH"
)

// DataDir returns the directory used to store Boop-GTK data.
func DataDir() (string, error) {
	if d := os.Getenv(EnvBoopHome); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".boop-gtk"), nil
}

// EnsureDataDir creates the data directory when missing and returns it.
func EnsureDataDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	return d, nil
}

// ScriptsDir returns the directory user scripts are loaded from.
func ScriptsDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "scripts"), nil
}

// DBPath returns the full path to the SQLite run-history database file.
func DBPath() (string, error) {
	if p := os.Getenv(EnvBoopDB); p != "" {
		return p, nil
	}
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "boop.db"), nil
}

// SettingsPath returns the full path to the optional settings file.
func SettingsPath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.yaml"), nil
}
