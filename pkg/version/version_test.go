package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetBuildInfoDefaults(t *testing.T) {
	info := GetBuildInfo()
	require.Equal(t, "dev", info.Version)
	require.NotEmpty(t, info.GoVersion)
	require.Contains(t, info.Platform, "/")
	require.True(t, info.BuildTime.IsZero())
}

func TestGetBuildInfoParsesBuildDate(t *testing.T) {
	orig := BuildDate
	defer func() { BuildDate = orig }()

	BuildDate = "2026-08-24T12:00:00Z"
	info := GetBuildInfo()
	require.False(t, info.BuildTime.IsZero())
	require.Equal(t, 2026, info.BuildTime.Year())
}
