package config

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigDirName = "ibctl"
	defaultConfigFile    = "config.yaml"
	defaultTokenFile     = "tokens.json"
	defaultLogDirName    = "ibctl"
)

func DefaultConfigPath() string {
	if env := os.Getenv("IBCTL_CONFIG"); env != "" {
		return env
	}
	base, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(base, defaultConfigDirName, defaultConfigFile)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ibctl", defaultConfigFile)
}

func DefaultTokenPath() string {
	base, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(base, defaultConfigDirName, defaultTokenFile)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ibctl", defaultTokenFile)
}

// DefaultLogDir is where the sync outcome CSV lands unless overridden via
// --log-dir or settings.log-dir.
func DefaultLogDir() string {
	return filepath.Join(os.TempDir(), defaultLogDirName)
}
