package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	paths, err := DefaultPaths()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".preview"), paths.HomeDir)
	assert.Equal(t, filepath.Join(home, ".preview", "config.yaml"), paths.ConfigFile)
}

func TestGetConfigFile(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv("PREVIEW_CONFIG", "/etc/preview.yaml")

		path, err := GetConfigFile()

		require.NoError(t, err)
		assert.Equal(t, "/etc/preview.yaml", path)
	})

	t.Run("default location", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("PREVIEW_CONFIG", "")

		path, err := GetConfigFile()

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".preview", "config.yaml"), path)
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"absolute", "/tmp/config.yaml", "/tmp/config.yaml"},
		{"relative", "config.yaml", "config.yaml"},
		{"tilde only", "~", home},
		{"tilde path", "~/.preview/config.yaml", filepath.Join(home, ".preview", "config.yaml")},
		{"other user", "~alice/config.yaml", "~alice/config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
