package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/previewkit/cli/internal/cmdtypes"
	"github.com/previewkit/cli/internal/cmdutil"
	oerrors "github.com/previewkit/cli/internal/errors"
	"github.com/previewkit/cli/internal/manifest"
	"github.com/previewkit/cli/internal/output"
	"github.com/previewkit/cli/internal/preview"
)

// inspectOptions holds the flags for the inspect command.
type inspectOptions struct {
	manifest string
	format   string
}

// NewInspectCmd creates the inspect command.
func NewInspectCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &inspectOptions{}

	c := &cobra.Command{
		Use:   "inspect",
		Short: "Print the normalized preview manifest",
		Long: `Load a preview manifest, normalize it the same way 'preview report' does,
and print the resulting modules, groups, and issues as YAML or JSON, a
per-module summary table, or a tree of groups and variations.

Useful for checking what a manifest producer emitted.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runInspect(c, opts)
		},
	}

	c.Flags().StringVar(&opts.manifest, "manifest", "", "Path to the aggregated preview manifest (JSON)")
	c.Flags().StringVarP(&opts.format, "output", "o", string(output.FormatYAML), "Output format: yaml, json, table, tree")
	_ = c.MarkFlagRequired("manifest")

	return c
}

func runInspect(c *cobra.Command, opts *inspectOptions) error {
	format, ok := output.ParseFormat(opts.format)
	if !ok {
		return cmdutil.Fail("invalid inspect options", oerrors.NewValidationError(
			fmt.Sprintf("unsupported output format %q", opts.format), "", "Use -o yaml, json, table, or tree"))
	}

	result, err := manifest.LoadAndNormalize(opts.manifest)
	if err != nil {
		return cmdutil.Fail("loading manifest", err)
	}

	view := result.View()
	w := c.OutOrStdout()

	switch format {
	case output.FormatTable:
		_, err = io.WriteString(w, summaryTable(view).String()+"\n")
	case output.FormatTree:
		_, err = io.WriteString(w, output.RenderTree(previewTree(view)))
	default:
		err = output.WriteStructured(w, format, view)
	}
	if err != nil {
		return cmdutil.Fail("encoding manifest", err)
	}
	return nil
}

// summaryTable lists one row per module.
func summaryTable(view manifest.View) *output.Table {
	tbl := output.NewTable("MODULE", "VARIANT", "GROUPS", "PREVIEWS", "ISSUES", "MISSING")
	for _, m := range view.Modules {
		previews := 0
		for _, g := range m.Groups {
			previews += len(g.Entries)
		}
		tbl.Row(
			m.ModulePath,
			m.Variant,
			strconv.Itoa(len(m.Groups)),
			strconv.Itoa(previews),
			strconv.Itoa(len(m.EnvironmentIssues)),
			strconv.Itoa(len(m.MissingImages)),
		)
	}
	return tbl
}

// previewTree nests modules, groups, and variations in manifest order.
func previewTree(view manifest.View) *output.TreeNode {
	root := output.NewTree(fmt.Sprintf("%d previews across %d module(s)", view.Previews, len(view.Modules)))
	if len(view.Issues) > 0 {
		root.Description = fmt.Sprintf("%d global issue(s)", len(view.Issues))
	}
	for _, m := range view.Modules {
		mod := root.Add(m.Title, m.ManifestFile)
		for _, g := range m.Groups {
			group := mod.Add(g.Key.Label(), variationCount(len(g.Entries)))
			for _, e := range g.Entries {
				group.Add(entryName(e), entryFlags(e))
			}
		}
	}
	return root
}

func variationCount(n int) string {
	if n == 1 {
		return "1 variation"
	}
	return fmt.Sprintf("%d variations", n)
}

func entryName(e preview.Entry) string {
	switch {
	case e.Configuration != "":
		return e.Configuration
	case e.ParameterInstance != nil:
		return fmt.Sprintf("parameter #%d", *e.ParameterInstance)
	default:
		return "Default configuration"
	}
}

func entryFlags(e preview.Entry) string {
	var flags []string
	if e.Placeholder {
		flags = append(flags, "placeholder")
	}
	if e.MissingImage {
		flags = append(flags, "missing image")
	}
	if e.RenderError != "" {
		flags = append(flags, "render error")
	}
	return strings.Join(flags, ", ")
}
