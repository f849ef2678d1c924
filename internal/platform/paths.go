// Package platform resolves the per-OS application data directory.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	appFolder    = "fiwa-cli"
	appFolderDev = "fiwa-cli-dev"
)

// DataDir returns the application data directory for the current OS.
// dev selects a separate directory so development runs never touch real
// data. Linux uses ~/.config, Windows %LOCALAPPDATA%, macOS
// ~/Library/Application Support; anything else falls back to a hidden
// folder in the home directory.
func DataDir(dev bool) (string, error) {
	folder := appFolder
	if dev {
		folder = appFolderDev
	}

	switch runtime.GOOS {
	case "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, ".config", folder), nil
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			return "", fmt.Errorf("LOCALAPPDATA is not set")
		}
		return filepath.Join(local, folder), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", folder), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, "."+folder), nil
	}
}

// Ensure creates dir if needed. With wipe set, any previous content is
// removed first for a clean slate (dev mode).
func Ensure(dir string, wipe bool) error {
	if wipe {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("wipe data directory: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}
