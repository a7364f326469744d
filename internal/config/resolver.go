package config

import (
	"os"
	"sort"

	"github.com/previewkit/cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolveOptions describes the candidate values for one setting.
type ResolveOptions struct {
	// Key names the setting in logs, e.g. "report.imageMode".
	Key string
	// FlagValue is the flag value; empty when the flag was not set.
	FlagValue string
	// EnvVar is the environment variable consulted after the flag.
	EnvVar string
	// ConfigValue is the value from the config file (empty if not set).
	ConfigValue string
	// DefaultValue is used when nothing else is set.
	DefaultValue string
	// Secret masks the value in logs.
	Secret bool
}

// ResolvedValue is a setting together with its winning source.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	Secret bool
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// Resolve applies the precedence flag > env > config > default.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Secret:   opts.Secret,
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := ""
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.DefaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		// The loader already merges env into config; skip the echo.
		if c.source == SourceConfig && c.value == envValue {
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	if result.Source == "" {
		result.Source = SourceDefault
	}

	return result
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) PREVIEW_CONFIG env, (3) ~/.preview/config.yaml
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return Resolve(ResolveOptions{
		Key:          "config",
		FlagValue:    flagValue,
		EnvVar:       "PREVIEW_CONFIG",
		DefaultValue: paths.ConfigFile,
	}), nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.display(v.Value),
			"source", v.Source,
		)
		sources := make([]string, 0, len(v.Shadowed))
		for source := range v.Shadowed {
			sources = append(sources, string(source))
		}
		sort.Strings(sources)
		for _, source := range sources {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", v.display(v.Shadowed[ConfigSource(source)]),
			)
		}
	}
}

func (v ResolvedValue) display(s string) string {
	if v.Secret && s != "" {
		return "***"
	}
	return s
}
