package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, "ws://localhost:3000", cfg.URL())
	require.Equal(t, 10*time.Second, cfg.Timeout())
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vscodectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: dev.example.com\nport: 8188\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "ws://dev.example.com:8188", cfg.URL())
	require.Equal(t, 10*time.Second, cfg.Timeout(), "unset fields keep defaults")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vscodectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 99999\n"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid port")
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vscodectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [unterminated\n"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
