package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/previewkit/cli/internal/attachment"
	"github.com/previewkit/cli/internal/cmdtypes"
	"github.com/previewkit/cli/internal/cmdutil"
	"github.com/previewkit/cli/internal/config"
	oerrors "github.com/previewkit/cli/internal/errors"
	"github.com/previewkit/cli/internal/output"
)

// resolveOptions holds the flags for the resolve command.
type resolveOptions struct {
	comment string
	output  string
	upload  cmdutil.UploadFlags
	images  cmdutil.ImageRootFlag
}

// NewResolveCmd creates the resolve command.
func NewResolveCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &resolveOptions{}

	c := &cobra.Command{
		Use:   "resolve",
		Short: "Upload images referenced by attachment placeholders",
		Long: `Rewrite every ![alt](attachment://path) placeholder in a rendered report with
the URL of the uploaded image.

Each distinct file is uploaded at most once. Placeholders pointing at files
that do not exist are replaced by an "image unavailable" notice. The credential
is read from --token or GITHUB_TOKEN.`,
		Example: `  # Rewrite comment.md in place
  GITHUB_TOKEN=... preview resolve --comment comment.md --repo octo/app --issue-number 42`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runResolve(c, cfg, opts)
		},
	}

	c.Flags().StringVar(&opts.comment, "comment", "", "Path to the rendered report")
	c.Flags().StringVar(&opts.output, "output", "", "Write the rewritten report here (default: in place)")
	opts.upload.AddTo(c)
	opts.images.AddTo(c)
	_ = c.MarkFlagRequired("comment")
	_ = c.MarkFlagRequired("repo")
	_ = c.MarkFlagRequired("issue-number")

	return c
}

func runResolve(c *cobra.Command, cfg *cmdtypes.GlobalConfig, opts *resolveOptions) error {
	settings := cfg.Settings()

	owner, repo, err := attachment.ParseRepository(opts.upload.Repo)
	if err != nil {
		return cmdutil.Fail("invalid resolve options", err)
	}
	if opts.upload.IssueNumber <= 0 {
		return cmdutil.Fail("invalid resolve options", oerrors.NewValidationError(
			fmt.Sprintf("--issue-number must be positive, got %d", opts.upload.IssueNumber), "", ""))
	}

	token := cmdutil.Setting(c, "token", config.ResolveOptions{
		Key:    "token",
		EnvVar: "GITHUB_TOKEN",
		Secret: true,
	})
	baseURL := config.Resolve(config.ResolveOptions{
		Key:          "upload.baseURL",
		EnvVar:       "PREVIEW_UPLOAD_BASEURL",
		ConfigValue:  cmdutil.NonDefault(settings.Upload.BaseURL, attachment.DefaultBaseURL),
		DefaultValue: attachment.DefaultBaseURL,
	})
	config.LogResolvedValues(token, baseURL)

	client := attachment.NewClient(attachment.ClientOptions{
		BaseURL:     baseURL.Value,
		Token:       token.Value,
		Owner:       owner,
		Repo:        repo,
		IssueNumber: opts.upload.IssueNumber,
		Timeout:     settings.Upload.Timeout,
	})
	resolver := attachment.NewResolver(client, opts.images.ImageRoot)

	var stats attachment.Stats
	err = output.RunWithSpinner(c.Context(), func(ctx context.Context) error {
		var rewriteErr error
		stats, rewriteErr = resolver.RewriteFile(ctx, opts.comment, opts.output)
		return rewriteErr
	}, output.WithTitle("Uploading preview images..."))
	if err != nil {
		return cmdutil.Fail("resolving attachments", err)
	}

	target := opts.output
	if target == "" {
		target = opts.comment
	}
	output.Info(output.FormatCheckmark("attachments resolved"),
		"path", output.FormatNoun(target),
		"placeholders", stats.Placeholders,
		"uploaded", stats.Uploaded,
		"reused", stats.Reused,
		"unavailable", stats.Unavailable,
	)

	return nil
}
