package cmdutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	oerrors "github.com/previewkit/cli/internal/errors"
	"github.com/previewkit/cli/internal/output"
)

// WriteDocument writes content to path, or to w when path is empty or "-".
// Parent directories are created as needed.
func WriteDocument(w io.Writer, path, content string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(w, content)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // G306: reports are meant to be shared
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Fail logs err under msg and returns it as an already-printed ExitError
// whose code follows the error's sentinel.
func Fail(msg string, err error) error {
	output.Error(fmt.Sprintf("%s: %v", msg, err))
	return &oerrors.ExitError{
		Code:    oerrors.ExitCodeFromError(err),
		Err:     fmt.Errorf("%s: %w", msg, err),
		Printed: true,
	}
}
