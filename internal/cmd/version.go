package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/previewkit/cli/internal/cmdtypes"
	"github.com/previewkit/cli/internal/output"
	"github.com/previewkit/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show preview CLI version information.

Displays the CLI version, commit, build date, and Go toolchain.`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
}

func runVersion(_ *cobra.Command, _ []string) error {
	info := version.Get()

	output.Println(fmt.Sprintf("preview version %s", info.Version))
	output.Println(fmt.Sprintf("  Commit:    %s", info.GitCommit))
	output.Println(fmt.Sprintf("  Built:     %s", info.BuildDate))
	output.Println(fmt.Sprintf("  Go:        %s (%s)", info.GoVersion, info.Platform))

	return nil
}
