// Package cmdutil provides shared command utilities for preview subcommands.
// It centralizes flag groups, setting resolution, and output helpers.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/previewkit/cli/internal/config"
)

// ImageRootFlag holds the directory image paths are resolved against
// (report, resolve).
type ImageRootFlag struct {
	ImageRoot string
}

// AddTo registers the image root flag on the given cobra command.
func (f *ImageRootFlag) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ImageRoot, "image-root", ".",
		"Directory that image paths are relative to")
}

// ReportFlags holds the rendering flags of `preview report`.
type ReportFlags struct {
	Manifest    string
	Output      string
	Identifier  string
	ImageMode   string
	InlineLimit int64
	MaxChars    int
	ArtifactURL string
}

// AddTo registers the report flags on the given cobra command.
func (f *ReportFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Manifest, "manifest", "",
		"Path to the aggregated preview manifest (JSON)")
	cmd.Flags().StringVar(&f.Output, "output", "",
		"Write the report to this file (default: stdout)")
	cmd.Flags().StringVar(&f.Identifier, "identifier", "",
		"Hidden comment identifier; empty disables it (env: PREVIEW_REPORT_IDENTIFIER)")
	cmd.Flags().StringVar(&f.ImageMode, "image-mode", "",
		"Image mode: link, inline, attachment (env: PREVIEW_REPORT_IMAGEMODE)")
	cmd.Flags().Int64Var(&f.InlineLimit, "inline-limit", 0,
		"Largest image in bytes embedded by inline mode (env: PREVIEW_REPORT_INLINELIMIT)")
	cmd.Flags().IntVar(&f.MaxChars, "max-chars", 0,
		"Report size ceiling in characters (env: PREVIEW_REPORT_MAXCHARS)")
	cmd.Flags().StringVar(&f.ArtifactURL, "artifact-url", "",
		"Link to the uploaded preview artifact, shown in the header")
}

// UploadFlags holds the target of `preview resolve` uploads.
type UploadFlags struct {
	Repo        string
	IssueNumber int
	Token       string
}

// AddTo registers the upload flags on the given cobra command.
func (f *UploadFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Repo, "repo", "",
		"Target repository as owner/repo")
	cmd.Flags().IntVar(&f.IssueNumber, "issue-number", 0,
		"Issue or pull request number the comment belongs to")
	cmd.Flags().StringVar(&f.Token, "token", "",
		"Upload credential (env: GITHUB_TOKEN)")
}

// Setting resolves one value with precedence flag > env > config > default.
// The flag only counts when the user set it.
func Setting(cmd *cobra.Command, flag string, opts config.ResolveOptions) config.ResolvedValue {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		opts.FlagValue = f.Value.String()
	}
	return config.Resolve(opts)
}

// NonDefault returns value unless it equals def. Loaded config already has
// defaults applied, so this keeps the default source honest in debug logs.
func NonDefault(value, def string) string {
	if value == def {
		return ""
	}
	return value
}
