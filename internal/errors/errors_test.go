//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrConnectivity)
	assert.NotEqual(t, ErrValidation, ErrPermission)
	assert.NotEqual(t, ErrValidation, ErrNotFound)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "invalid configuration",
		Message:  "--repo must be formatted as owner/repo",
		Location: "/tmp/comment.md",
		Context:  map[string]string{"Repo": "octocat", "Issue": "12"},
		Hint:     "Pass --repo octocat/hello-world",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: invalid configuration")
	assert.Contains(t, output, "Location: /tmp/comment.md")
	assert.Contains(t, output, "Repo: octocat")
	assert.Contains(t, output, "--repo must be formatted as owner/repo")
	assert.Contains(t, output, "Hint: Pass --repo octocat/hello-world")
	// Context keys are sorted for stable output
	assert.Less(t, strings.Index(output, "Issue: 12"), strings.Index(output, "Repo: octocat"))
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrValidation,
	}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("a token is required", "", "Set GITHUB_TOKEN")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "invalid configuration", detail.Type)
	assert.Equal(t, "a token is required", detail.Message)
	assert.Equal(t, "Set GITHUB_TOKEN", detail.Hint)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("manifest file not found", "build/manifest.json", "")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "build/manifest.json")
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrValidation, "image mode check failed")

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "image mode check failed")
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit error", NewExitError(errors.New("boom"), ExitNotFound), ExitNotFound},
		{"validation", fmt.Errorf("flags: %w", ErrValidation), ExitValidationError},
		{"connectivity", NewConnectivityError("upload failed", nil, ""), ExitConnectivityError},
		{"permission", Wrap(ErrPermission, "401"), ExitPermissionDenied},
		{"not found", NewNotFoundError("missing", "", ""), ExitNotFound},
		{"general", errors.New("unexpected"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Not Found", ExitCodeName(ExitNotFound))
	assert.Equal(t, "Unknown", ExitCodeName(99))
}

func TestExitErrorUnwrap(t *testing.T) {
	exitErr := NewExitError(Wrap(ErrNotFound, "comment.md"), ExitNotFound)
	assert.True(t, errors.Is(exitErr, ErrNotFound))
	assert.Equal(t, "comment.md: not found", exitErr.Error())
}
