// Package cli provides the Cobra command structure for figmark.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/figmark/internal/configloader"
	"github.com/yaklabco/figmark/internal/logging"
	"github.com/yaklabco/figmark/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root figmark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "figmark",
		Short: "Render Markdown with implicit figures and HTML5 media",
		Long: `figmark renders CommonMark and GitHub Flavored Markdown to HTML.

A paragraph that holds nothing but an image becomes a <figure>, optionally
with a caption, a data-type, a tab index and a link. Images that point at
video or audio files become <video> and <audio> elements with translated
fallback text.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !config.ColorMode(color).IsValid() {
				return fmt.Errorf("%w: invalid --color %q; must be one of: auto, always, never",
					ErrInvalidUsage, color)
			}
			if debug {
				logging.SetLevel("debug")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().Bool("no-user-config", false, "ignore the user configuration file")
	rootCmd.PersistentFlags().StringP("directory", "C", "", "run as if started in this directory")
	rootCmd.PersistentFlags().StringVar(&color, "color", string(config.ColorAuto),
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newEnvCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	installHelp(rootCmd)

	return rootCmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// workingDir resolves --directory against the process working directory.
func workingDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("directory")
	if err != nil {
		return "", fmt.Errorf("get directory flag: %w", err)
	}
	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory %s: %w", dir, err)
	}
	return abs, nil
}

// loadConfig resolves the configuration for a command run from workDir.
func loadConfig(cmd *cobra.Command, workDir string, overrides []configloader.Override) (*config.Config, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	noUserConfig, err := cmd.Flags().GetBool("no-user-config")
	if err != nil {
		return nil, fmt.Errorf("get no-user-config flag: %w", err)
	}

	if cmd.Flags().Changed("color") {
		color, _ := cmd.Flags().GetString("color")
		overrides = append(overrides, func(cfg *config.Config) { cfg.Color = config.ColorMode(color) })
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:       workDir,
		ExplicitPath:     configPath,
		IgnoreUserConfig: noUserConfig,
		Overrides:        overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", "files", result.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldFlavor, result.Config.Flavor,
		logging.FieldLanguage, result.Config.Language,
		logging.FieldJobs, result.Config.Jobs,
	)

	return result.Config, nil
}
