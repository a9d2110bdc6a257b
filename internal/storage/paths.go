package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "shogiplay"

// envDataDir overrides the data directory when set.
const envDataDir = "SHOGIPLAY_DATA"

// baseDir returns the per-user application data root:
// - macOS: ~/Library/Application Support
// - Linux: $XDG_DATA_HOME or ~/.local/share
// - Windows: %APPDATA% or ~/AppData/Roaming
func baseDir() (string, error) {
	var env string
	var fallback []string
	switch runtime.GOOS {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		env, fallback = "APPDATA", []string{"AppData", "Roaming"}
	default:
		env, fallback = "XDG_DATA_HOME", []string{".local", "share"}
	}

	if env != "" {
		if dir := os.Getenv(env); dir != "" {
			return dir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

// GetDataDir returns the data directory for the application, creating it
// if needed.
func GetDataDir() (string, error) {
	dataDir := os.Getenv(envDataDir)
	if dataDir == "" {
		base, err := baseDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(base, appName)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}

	return dbDir, nil
}
