package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetConvmusicHome returns the convmusic home directory.
// Priority order:
//  1. CONVMUSIC_HOME environment variable (if set)
//  2. .convmusic under the user's home directory
//  3. .convmusic under the current working directory (fallback)
//
// The directory is created if it doesn't exist.
func GetConvmusicHome() (string, error) {
	// Try env var first
	if home := os.Getenv("CONVMUSIC_HOME"); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create convmusic home directory: %w", err)
		}
		return home, nil
	}

	base, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current working directory
		base, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	convmusicHome := filepath.Join(base, ".convmusic")
	if err := os.MkdirAll(convmusicHome, 0755); err != nil {
		return "", fmt.Errorf("create convmusic home directory: %w", err)
	}

	return convmusicHome, nil
}

// GetHistoryDBPath returns the path to the conversion history database.
// When override is non-empty it is used as-is; otherwise the database lives
// under the convmusic home directory.
func GetHistoryDBPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	home, err := GetConvmusicHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history.db"), nil
}
