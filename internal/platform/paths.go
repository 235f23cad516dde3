package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config file location
const (
	AppDirName     = "departure-board"
	ConfigFileName = "config.yaml"
)

// DefaultConfigPath returns <UserConfigDir>/departure-board/config.yaml
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find user config directory: %w", err)
	}
	return filepath.Join(dir, AppDirName, ConfigFileName), nil
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
