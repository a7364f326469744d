package report

import (
	"fmt"
	"strings"

	oerrors "github.com/previewkit/cli/internal/errors"
)

// ImageMode selects how preview images are referenced in the report.
type ImageMode int

const (
	// ImageModeAttachment emits attachment:// placeholders for later upload.
	ImageModeAttachment ImageMode = iota

	// ImageModeInline embeds small images as base64 data URIs and falls
	// back to attachment placeholders for anything larger.
	ImageModeInline

	// ImageModeLink emits the image-root-relative path as inline code.
	ImageModeLink
)

// String returns the flag spelling of the mode.
func (m ImageMode) String() string {
	switch m {
	case ImageModeAttachment:
		return "attachment"
	case ImageModeInline:
		return "inline"
	case ImageModeLink:
		return "link"
	default:
		return fmt.Sprintf("ImageMode(%d)", int(m))
	}
}

// ValidImageModes returns the accepted --image-mode values.
func ValidImageModes() []string {
	return []string{"link", "inline", "attachment"}
}

// ParseImageMode parses a --image-mode value.
func ParseImageMode(s string) (ImageMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attachment":
		return ImageModeAttachment, nil
	case "inline":
		return ImageModeInline, nil
	case "link":
		return ImageModeLink, nil
	}
	return ImageModeAttachment, oerrors.NewValidationError(
		fmt.Sprintf("invalid image mode %q", s),
		"",
		fmt.Sprintf("Valid image modes: %s", strings.Join(ValidImageModes(), ", ")),
	)
}
