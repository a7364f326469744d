package cmdtypes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/previewkit/cli/internal/config"
	oerrors "github.com/previewkit/cli/internal/errors"
)

func TestGlobalConfig_Settings(t *testing.T) {
	var nilCfg *GlobalConfig
	assert.Equal(t, config.DefaultConfig(), nilCfg.Settings())
	assert.Equal(t, config.DefaultConfig(), (&GlobalConfig{}).Settings())

	loaded := &config.Config{Report: config.ReportConfig{ImageMode: "link"}}
	assert.Same(t, loaded, (&GlobalConfig{Config: loaded}).Settings())
}

func TestExitFor(t *testing.T) {
	assert.NoError(t, ExitFor(nil))

	err := ExitFor(fmt.Errorf("bad flag: %w", oerrors.ErrValidation))
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitValidationError, exitErr.Code)
	assert.False(t, exitErr.Printed)
}
