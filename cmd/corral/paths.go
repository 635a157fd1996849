package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// corralDir is the per-user state directory under $HOME.
const corralDir = ".corral"

// Paths holds all resolved corral state file paths.
// Use ResolvePaths() to populate this struct with defaults + env overrides.
type Paths struct {
	CorralHome string // ~/.corral or CORRAL_HOME
	DBPath     string // runs.db or CORRAL_DB_PATH
	ConfigPath string // config.toml (respects CORRAL_HOME)
}

// ResolvePaths returns all corral paths, respecting env var overrides.
// Environment variables:
//   - CORRAL_HOME: base directory for all corral state (default: ~/.corral)
//   - CORRAL_DB_PATH: run-history database (default: $CORRAL_HOME/runs.db)
//
// If CORRAL_HOME is set, it becomes the base for all default paths.
// CORRAL_DB_PATH overrides both the default and the CORRAL_HOME base.
func ResolvePaths() (*Paths, error) {
	home, err := resolveCorralHome()
	if err != nil {
		return nil, err
	}

	paths := &Paths{
		CorralHome: home,
		DBPath:     resolvePathWithEnv("CORRAL_DB_PATH", home, "runs.db"),
		ConfigPath: filepath.Join(home, "config.toml"),
	}

	return paths, nil
}

// resolveCorralHome returns the corral home directory from CORRAL_HOME or ~/.corral.
func resolveCorralHome() (string, error) {
	if v := os.Getenv("CORRAL_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, corralDir), nil
}

// resolvePathWithEnv returns the path from envKey if set, otherwise joins base + suffix.
func resolvePathWithEnv(envKey, base, suffix string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return filepath.Join(base, suffix)
}
