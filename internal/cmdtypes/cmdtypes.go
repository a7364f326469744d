// Package cmdtypes holds the global state and exit codes shared by the
// preview commands.
package cmdtypes

import (
	"github.com/previewkit/cli/internal/config"
	oerrors "github.com/previewkit/cli/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	Config     *config.Config // loaded config with defaults applied
	ConfigPath string         // resolved --config path
	Verbose    bool
}

// Settings returns the loaded config, or defaults before initialization.
func (g *GlobalConfig) Settings() *config.Config {
	if g == nil || g.Config == nil {
		return config.DefaultConfig()
	}
	return g.Config
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess           = oerrors.ExitSuccess
	ExitGeneralError      = oerrors.ExitGeneralError
	ExitValidationError   = oerrors.ExitValidationError
	ExitConnectivityError = oerrors.ExitConnectivityError
	ExitPermissionDenied  = oerrors.ExitPermissionDenied
	ExitNotFound          = oerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

// ExitFor wraps err in an ExitError whose code follows its sentinel.
// A nil err stays nil.
func ExitFor(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
}
