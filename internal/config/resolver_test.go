package config

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/previewkit/cli/internal/output"
)

func TestResolve_FlagPrecedence(t *testing.T) {
	t.Setenv("PREVIEW_TEST_MODE", "inline")

	result := Resolve(ResolveOptions{
		Key:          "report.imageMode",
		FlagValue:    "link",
		EnvVar:       "PREVIEW_TEST_MODE",
		ConfigValue:  "attachment-from-config",
		DefaultValue: "attachment",
	})

	assert.Equal(t, "link", result.Value)
	assert.Equal(t, SourceFlag, result.Source)
	assert.Equal(t, "inline", result.Shadowed[SourceEnv])
	assert.Equal(t, "attachment-from-config", result.Shadowed[SourceConfig])
	assert.Equal(t, "attachment", result.Shadowed[SourceDefault])
}

func TestResolve_EnvPrecedence(t *testing.T) {
	t.Setenv("PREVIEW_TEST_MODE", "inline")

	result := Resolve(ResolveOptions{
		Key:         "report.imageMode",
		EnvVar:      "PREVIEW_TEST_MODE",
		ConfigValue: "link",
	})

	assert.Equal(t, "inline", result.Value)
	assert.Equal(t, SourceEnv, result.Source)
	assert.Equal(t, "link", result.Shadowed[SourceConfig])
}

func TestResolve_ConfigEchoOfEnvIsNotShadowed(t *testing.T) {
	t.Setenv("PREVIEW_TEST_MODE", "inline")

	result := Resolve(ResolveOptions{
		Key:         "report.imageMode",
		EnvVar:      "PREVIEW_TEST_MODE",
		ConfigValue: "inline",
	})

	assert.Equal(t, SourceEnv, result.Source)
	assert.NotContains(t, result.Shadowed, SourceConfig)
}

func TestResolve_ConfigPrecedence(t *testing.T) {
	result := Resolve(ResolveOptions{
		Key:          "report.maxChars",
		ConfigValue:  "100",
		DefaultValue: "60000",
	})

	assert.Equal(t, "100", result.Value)
	assert.Equal(t, SourceConfig, result.Source)
	assert.Equal(t, "60000", result.Shadowed[SourceDefault])
}

func TestResolve_DefaultAndEmpty(t *testing.T) {
	result := Resolve(ResolveOptions{Key: "report.maxChars", DefaultValue: "60000"})
	assert.Equal(t, "60000", result.Value)
	assert.Equal(t, SourceDefault, result.Source)
	assert.Empty(t, result.Shadowed)

	empty := Resolve(ResolveOptions{Key: "token", EnvVar: "PREVIEW_TEST_UNSET"})
	assert.Empty(t, empty.Value)
	assert.Equal(t, SourceDefault, empty.Source)
}

func TestResolveConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv("PREVIEW_CONFIG", "/env/config.yaml")
		result, err := ResolveConfigPath("/flag/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, "/flag/config.yaml", result.Value)
		assert.Equal(t, SourceFlag, result.Source)
	})

	t.Run("env then default", func(t *testing.T) {
		t.Setenv("PREVIEW_CONFIG", "/env/config.yaml")
		result, err := ResolveConfigPath("")
		require.NoError(t, err)
		assert.Equal(t, SourceEnv, result.Source)

		t.Setenv("PREVIEW_CONFIG", "")
		result, err = ResolveConfigPath("")
		require.NoError(t, err)
		assert.Equal(t, SourceDefault, result.Source)
		assert.Equal(t, filepath.Join(home, ".preview", "config.yaml"), result.Value)
	})
}

func TestLogResolvedValues_MasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	output.SetupLogging(output.LogConfig{Verbose: true, Timestamps: output.BoolPtr(false)})
	output.SetLogWriter(&buf)
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })

	t.Setenv("PREVIEW_TEST_TOKEN", "env-secret")
	LogResolvedValues(Resolve(ResolveOptions{
		Key:       "token",
		FlagValue: "flag-secret",
		EnvVar:    "PREVIEW_TEST_TOKEN",
		Secret:    true,
	}))

	logged := buf.String()
	assert.Contains(t, logged, "token")
	assert.Contains(t, logged, "***")
	assert.NotContains(t, logged, "flag-secret")
	assert.NotContains(t, logged, "env-secret")
}
