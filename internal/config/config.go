// Package config provides configuration loading and management.
package config

import (
	"time"

	"github.com/previewkit/cli/internal/attachment"
	"github.com/previewkit/cli/internal/report"
)

// ReportConfig contains `preview report` settings.
type ReportConfig struct {
	// Identifier is embedded as a hidden comment for update-in-place.
	// Env: PREVIEW_REPORT_IDENTIFIER
	Identifier string `mapstructure:"identifier" json:"identifier,omitempty"`

	// ImageMode is one of link, inline, attachment.
	// Env: PREVIEW_REPORT_IMAGEMODE
	ImageMode string `mapstructure:"imageMode" json:"imageMode,omitempty"`

	// InlineLimit is the largest image, in bytes, embedded by inline mode.
	// Env: PREVIEW_REPORT_INLINELIMIT
	InlineLimit int64 `mapstructure:"inlineLimit" json:"inlineLimit,omitempty"`

	// MaxChars is the report size ceiling in characters.
	// Env: PREVIEW_REPORT_MAXCHARS
	MaxChars int `mapstructure:"maxChars" json:"maxChars,omitempty"`
}

// UploadConfig contains `preview resolve` settings.
type UploadConfig struct {
	// BaseURL is the attachment upload host.
	// Env: PREVIEW_UPLOAD_BASEURL
	BaseURL string `mapstructure:"baseURL" json:"baseURL,omitempty"`

	// Timeout bounds each upload request.
	// Env: PREVIEW_UPLOAD_TIMEOUT
	Timeout time.Duration `mapstructure:"timeout" json:"timeout,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" json:"timestamps,omitempty"`
}

// Config represents the preview CLI configuration, loaded from
// ~/.preview/config.yaml and PREVIEW_* environment variables.
type Config struct {
	Report ReportConfig `mapstructure:"report" json:"report"`
	Upload UploadConfig `mapstructure:"upload" json:"upload"`
	Log    LogConfig    `mapstructure:"log" json:"log"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{
			Identifier:  report.DefaultIdentifier,
			ImageMode:   report.ImageModeAttachment.String(),
			InlineLimit: report.DefaultInlineLimit,
			MaxChars:    report.DefaultMaxChars,
		},
		Upload: UploadConfig{
			BaseURL: attachment.DefaultBaseURL,
			Timeout: attachment.DefaultTimeout,
		},
	}
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c *Config) WithDefaults() *Config {
	out := DefaultConfig()
	if c == nil {
		return out
	}
	if c.Report.Identifier != "" {
		out.Report.Identifier = c.Report.Identifier
	}
	if c.Report.ImageMode != "" {
		out.Report.ImageMode = c.Report.ImageMode
	}
	if c.Report.InlineLimit > 0 {
		out.Report.InlineLimit = c.Report.InlineLimit
	}
	if c.Report.MaxChars > 0 {
		out.Report.MaxChars = c.Report.MaxChars
	}
	if c.Upload.BaseURL != "" {
		out.Upload.BaseURL = c.Upload.BaseURL
	}
	if c.Upload.Timeout > 0 {
		out.Upload.Timeout = c.Upload.Timeout
	}
	out.Log.Timestamps = c.Log.Timestamps
	return out
}
