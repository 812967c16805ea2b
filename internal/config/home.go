package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	homeEnv    = "LEVELVERIFY_HOME"
	homeDir    = ".levelverify"
	rootMarker = ".levelverify-root"
	modulePath = "github.com/harrison/levelverify"
)

// Home returns the levelverify home directory.
// Priority order:
//  1. LEVELVERIFY_HOME environment variable (if set)
//  2. Repository root (detected by .levelverify-root or go.mod) + /.levelverify
//  3. Current working directory + /.levelverify (fallback)
//
// The directory is created if it doesn't exist.
func Home() (string, error) {
	return HomeWithRoot("")
}

// HomeWithRoot is Home with an explicit repository root. An empty root
// falls back to searching upward from the working directory.
func HomeWithRoot(root string) (string, error) {
	if home := os.Getenv(homeEnv); home != "" {
		return home, nil
	}

	base := root
	var err error
	if base == "" {
		base, err = findRepoRoot()
	}
	if err != nil || base == "" {
		base, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	home := filepath.Join(base, homeDir)
	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create levelverify home directory: %w", err)
	}
	return home, nil
}

// findRepoRoot walks up from the working directory looking for the
// .levelverify-root marker or a go.mod declaring this module.
func findRepoRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	current := cwd
	for {
		if _, err := os.Stat(filepath.Join(current, rootMarker)); err == nil {
			return current, nil
		}
		if data, err := os.ReadFile(filepath.Join(current, "go.mod")); err == nil {
			if strings.Contains(string(data), "module "+modulePath) {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return "", fmt.Errorf("levelverify repository root not found (looking for %s or go.mod with %s)", rootMarker, modulePath)
}

// ResolvePath makes a relative path absolute against the home's parent
// directory, so ".levelverify/logs" lands next to the home directory.
func ResolvePath(path string) (string, error) {
	if path == "" || filepath.IsAbs(path) {
		return path, nil
	}
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(home), path), nil
}
