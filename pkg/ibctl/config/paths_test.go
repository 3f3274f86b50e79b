package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigPathEnvOverride(t *testing.T) {
	t.Setenv("IBCTL_CONFIG", "/custom/config.yaml")
	require.Equal(t, "/custom/config.yaml", DefaultConfigPath())
}

func TestDefaultConfigPathFallsBackToUserDir(t *testing.T) {
	t.Setenv("IBCTL_CONFIG", "")
	path := DefaultConfigPath()
	require.True(t, strings.HasSuffix(path, filepath.Join("ibctl", "config.yaml")) ||
		strings.HasSuffix(path, filepath.Join(".ibctl", "config.yaml")))
}

func TestDefaultLogDir(t *testing.T) {
	dir := DefaultLogDir()
	require.Equal(t, "ibctl", filepath.Base(dir))
}
