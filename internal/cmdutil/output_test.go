package cmdutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/previewkit/cli/internal/errors"
	"github.com/previewkit/cli/internal/output"
)

func TestWriteDocument_Stdout(t *testing.T) {
	for _, path := range []string{"", "-"} {
		var buf bytes.Buffer
		require.NoError(t, WriteDocument(&buf, path, "# report\n"))
		assert.Equal(t, "# report\n", buf.String())
	}
}

func TestWriteDocument_File(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "nested", "dir", "comment.md")

	require.NoError(t, WriteDocument(&buf, path, "body"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "body", string(data))
	assert.Empty(t, buf.String())
}

func TestFail(t *testing.T) {
	var logBuf bytes.Buffer
	output.SetupLogging(output.LogConfig{Timestamps: output.BoolPtr(false)})
	output.SetLogWriter(&logBuf)
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })

	err := Fail("loading manifest", oerrors.NewNotFoundError("manifest file not found: m.json", "m.json", ""))

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, oerrors.ExitNotFound, exitErr.Code)
	assert.True(t, exitErr.Printed)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
	assert.Contains(t, logBuf.String(), "loading manifest")
	assert.Contains(t, logBuf.String(), "manifest file not found")
}

func TestFail_GeneralError(t *testing.T) {
	output.SetLogWriter(&bytes.Buffer{})
	t.Cleanup(func() { output.SetupLogging(output.LogConfig{}) })

	err := Fail("writing report", errors.New("disk full"))

	assert.Equal(t, oerrors.ExitGeneralError, oerrors.ExitCodeFromError(err))
}
