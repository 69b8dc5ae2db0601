package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/bingpot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	settings, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), settings)
}

func TestConfigInitCmd_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("jpeg_quality = 50\n"), 0644))

	_, err := execute(t, "--config", path, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg_quality = 50\n", string(data))

	_, err = execute(t, "--config", path, "config", "init", "--force")
	require.NoError(t, err)
	settings, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 90, settings.JPEGQuality)
}

func TestConfigShowCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("jpeg_quality = 75\nuser_agent = \"tester\"\n"), 0644))

	out, err := execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "jpeg_quality    = 75")
	assert.Contains(t, out, "user_agent      = tester")
	assert.Contains(t, out, "archive_url     = "+config.DefaultSettings().ArchiveURL)
}
