package attachment

import (
	"fmt"
	"net/http"

	oerrors "github.com/previewkit/cli/internal/errors"
)

// UploadError reports a non-2xx response from the attachment endpoint.
type UploadError struct {
	// Path is the file that failed to upload.
	Path string

	// StatusCode is the HTTP status code.
	StatusCode int

	// Status is the status line, e.g. "422 Unprocessable Entity".
	Status string

	// Body is the response body, verbatim.
	Body string

	// Hint holds remediation guidance for well-known failures.
	Hint string
}

// Error implements the error interface.
func (e *UploadError) Error() string {
	msg := fmt.Sprintf("failed to upload %s: %s: %s", e.Path, e.Status, e.Body)
	if e.Hint != "" {
		msg += " " + e.Hint
	}
	return msg
}

// Unwrap classifies the failure for exit-code mapping.
func (e *UploadError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return oerrors.ErrPermission
	default:
		return oerrors.ErrConnectivity
	}
}

// badSizeHint explains the most common upload rejection.
func badSizeHint(size int64) string {
	return fmt.Sprintf(
		"The upload endpoint reported \"Bad Size\" for the payload. "+
			"Verify the preview renderer downscaled its outputs, "+
			"confirm the attachment is under the %d byte limit, "+
			"and ensure the multipart request body matches the expected format. "+
			"Current file size: %d bytes.",
		MaxAttachmentBytes, size)
}
