// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/previewkit/cli/internal/cmdtypes"
	"github.com/previewkit/cli/internal/config"
	oerrors "github.com/previewkit/cli/internal/errors"
	"github.com/previewkit/cli/internal/output"
)

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	config     string
	envFile    string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the preview CLI.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "preview",
		Short: "Compose preview report tooling",
		Long: `preview turns a Compose preview manifest into a Markdown report for a pull
request comment, and uploads the images that report references.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return initializeGlobals(c, flags, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: PREVIEW_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Environment file loaded before resolving settings")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewReportCmd(cfg),
		NewResolveCmd(cfg),
		NewInspectCmd(cfg),
		NewVersionCmd(cfg),
	)

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration into cfg.
func initializeGlobals(c *cobra.Command, flags *rootFlags, cfg *cmdtypes.GlobalConfig) error {
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	}
	// Early setup so config loading can log at debug level.
	setupLogging(c, logCfg)

	if err := config.LoadDotEnv(flags.envFile); err != nil {
		return cmdtypes.ExitFor(err)
	}

	configPath, err := config.ResolveConfigPath(flags.config)
	if err != nil {
		return cmdtypes.ExitFor(err)
	}

	loaded, err := config.NewLoader().LoadWithDefaults(configPath.Value)
	if err != nil {
		return oerrors.NewExitError(err, cmdtypes.ExitValidationError)
	}

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	if logCfg.Timestamps == nil && loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
		setupLogging(c, logCfg)
	}

	config.LogResolvedValues(configPath)

	cfg.Config = loaded
	cfg.ConfigPath = configPath.Value
	cfg.Verbose = flags.verbose

	return nil
}

// setupLogging configures the logger and points it at the command's stderr.
func setupLogging(c *cobra.Command, cfg output.LogConfig) {
	output.SetupLogging(cfg)
	output.SetLogWriter(c.ErrOrStderr())
}
