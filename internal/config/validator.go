package config

import (
	"fmt"
	"net/url"
	"strings"

	oerrors "github.com/previewkit/cli/internal/errors"
	"github.com/previewkit/cli/internal/report"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap classifies config problems as validation failures.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validate checks c for values no command could use.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Report.ImageMode != "" {
		if _, err := report.ParseImageMode(c.Report.ImageMode); err != nil {
			errs = append(errs, ValidationError{
				Field:   "report.imageMode",
				Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(report.ValidImageModes(), ", "), c.Report.ImageMode),
			})
		}
	}
	if c.Report.InlineLimit < 0 {
		errs = append(errs, ValidationError{Field: "report.inlineLimit", Message: "must not be negative"})
	}
	if c.Report.MaxChars < 0 {
		errs = append(errs, ValidationError{Field: "report.maxChars", Message: "must not be negative"})
	}
	if c.Upload.BaseURL != "" {
		u, err := url.Parse(c.Upload.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{Field: "upload.baseURL", Message: fmt.Sprintf("must be an http(s) URL, got %q", c.Upload.BaseURL)})
		}
	}
	if c.Upload.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "upload.timeout", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
