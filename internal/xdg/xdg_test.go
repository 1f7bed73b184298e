// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package xdg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDir_EnvVar(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/shopfront", ConfigDir())
}

func TestConfigDir_Fallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/test")
	assert.Equal(t, "/home/test/.config/shopfront", ConfigDir())
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/shopfront/config.yaml", ConfigFile())
}

func TestFindConfigFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	assert.Empty(t, FindConfigFile(), "missing file")

	dir := filepath.Join(base, "shopfront")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ConfigFileName), 0o700))
	assert.Empty(t, FindConfigFile(), "directory is not a config file")

	require.NoError(t, os.Remove(filepath.Join(dir, ConfigFileName)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("log:\n  level: debug\n"), 0o600))
	assert.Equal(t, filepath.Join(dir, ConfigFileName), FindConfigFile())
}
