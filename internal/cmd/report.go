package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/previewkit/cli/internal/cmdtypes"
	"github.com/previewkit/cli/internal/cmdutil"
	"github.com/previewkit/cli/internal/config"
	oerrors "github.com/previewkit/cli/internal/errors"
	"github.com/previewkit/cli/internal/manifest"
	"github.com/previewkit/cli/internal/output"
	"github.com/previewkit/cli/internal/report"
)

// reportOptions holds the flags for the report command.
type reportOptions struct {
	report cmdutil.ReportFlags
	images cmdutil.ImageRootFlag
}

// NewReportCmd creates the report command.
func NewReportCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &reportOptions{}

	c := &cobra.Command{
		Use:   "report",
		Short: "Render a preview manifest as a Markdown report",
		Long: `Render the aggregated preview manifest as a Markdown report suitable for a
pull request comment.

Each module becomes a section with one collapsible table per composable. The
report never exceeds --max-chars; modules that do not fit are omitted whole and
listed in a footer.`,
		Example: `  # Render with attachment placeholders, to be resolved by 'preview resolve'
  preview report --manifest build/previews/manifest.json --output comment.md

  # Embed small images directly
  preview report --manifest manifest.json --image-mode inline --inline-limit 200000`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runReport(c, cfg, opts)
		},
	}

	opts.report.AddTo(c)
	opts.images.AddTo(c)
	_ = c.MarkFlagRequired("manifest")

	return c
}

func runReport(c *cobra.Command, cfg *cmdtypes.GlobalConfig, opts *reportOptions) error {
	renderOpts, err := resolveReportOptions(c, cfg.Settings(), opts)
	if err != nil {
		return cmdutil.Fail("invalid report options", err)
	}

	result, err := manifest.LoadAndNormalize(opts.report.Manifest)
	if err != nil {
		return cmdutil.Fail("loading manifest", err)
	}
	output.Info("manifest loaded",
		"path", output.FormatNoun(opts.report.Manifest),
		"modules", len(result.Modules),
		"previews", result.PreviewCount(),
	)

	doc := report.Render(result.Modules, result.Issues, renderOpts)
	for _, title := range doc.Omitted {
		output.ModuleLogger(title).Warn("omitted to keep the report within the size ceiling",
			"maxChars", renderOpts.MaxChars)
	}

	if err := cmdutil.WriteDocument(c.OutOrStdout(), opts.report.Output, doc.Markdown); err != nil {
		return cmdutil.Fail("writing report", err)
	}
	if opts.report.Output != "" && opts.report.Output != "-" {
		output.Info(output.FormatCheckmark("report written"),
			"path", output.FormatNoun(opts.report.Output),
			"chars", doc.Chars(),
			"mode", renderOpts.ImageMode,
		)
	}

	return nil
}

// resolveReportOptions merges flags, environment, and config into render options.
func resolveReportOptions(c *cobra.Command, settings *config.Config, opts *reportOptions) (report.Options, error) {
	identifier := cmdutil.Setting(c, "identifier", config.ResolveOptions{
		Key:          "report.identifier",
		EnvVar:       "PREVIEW_REPORT_IDENTIFIER",
		ConfigValue:  cmdutil.NonDefault(settings.Report.Identifier, report.DefaultIdentifier),
		DefaultValue: report.DefaultIdentifier,
	})
	// An explicit empty --identifier disables the hidden comment.
	if c.Flags().Changed("identifier") && opts.report.Identifier == "" {
		identifier.Value = ""
		identifier.Source = config.SourceFlag
	}

	mode := cmdutil.Setting(c, "image-mode", config.ResolveOptions{
		Key:          "report.imageMode",
		EnvVar:       "PREVIEW_REPORT_IMAGEMODE",
		ConfigValue:  cmdutil.NonDefault(settings.Report.ImageMode, report.ImageModeAttachment.String()),
		DefaultValue: report.ImageModeAttachment.String(),
	})
	inline := cmdutil.Setting(c, "inline-limit", config.ResolveOptions{
		Key:          "report.inlineLimit",
		EnvVar:       "PREVIEW_REPORT_INLINELIMIT",
		ConfigValue:  cmdutil.NonDefault(strconv.FormatInt(settings.Report.InlineLimit, 10), strconv.Itoa(report.DefaultInlineLimit)),
		DefaultValue: strconv.Itoa(report.DefaultInlineLimit),
	})
	maxChars := cmdutil.Setting(c, "max-chars", config.ResolveOptions{
		Key:          "report.maxChars",
		EnvVar:       "PREVIEW_REPORT_MAXCHARS",
		ConfigValue:  cmdutil.NonDefault(strconv.Itoa(settings.Report.MaxChars), strconv.Itoa(report.DefaultMaxChars)),
		DefaultValue: strconv.Itoa(report.DefaultMaxChars),
	})
	config.LogResolvedValues(identifier, mode, inline, maxChars)

	imageMode, err := report.ParseImageMode(mode.Value)
	if err != nil {
		return report.Options{}, err
	}
	inlineLimit, err := positiveInt(inline, "--inline-limit")
	if err != nil {
		return report.Options{}, err
	}
	ceiling, err := positiveInt(maxChars, "--max-chars")
	if err != nil {
		return report.Options{}, err
	}

	return report.Options{
		Identifier:  identifier.Value,
		ImageRoot:   opts.images.ImageRoot,
		ImageMode:   imageMode,
		InlineLimit: inlineLimit,
		MaxChars:    int(ceiling),
		ArtifactURL: opts.report.ArtifactURL,
	}, nil
}

func positiveInt(v config.ResolvedValue, flag string) (int64, error) {
	n, err := strconv.ParseInt(v.Value, 10, 64)
	if err != nil || n <= 0 {
		return 0, oerrors.NewValidationError(
			fmt.Sprintf("%s must be a positive integer, got %q (from %s)", flag, v.Value, v.Source),
			"",
			"",
		)
	}
	return n, nil
}
