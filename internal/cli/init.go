package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/figmark/internal/configloader"
	"github.com/yaklabco/figmark/internal/logging"
	"github.com/yaklabco/figmark/pkg/config"
)

// defaultConfigName is the file init writes when --output is not given.
const defaultConfigName = ".figmark.yml"

type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a figmark configuration file",
		Long: `Create a new .figmark.yml configuration file in the current directory.
The minimal template lists every setting commented out at its default;
the full template also documents each one.

Examples:
  figmark init                       Create a minimal .figmark.yml
  figmark init --full                Document every setting
  figmark init --output site.yml     Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every setting in the template")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigName, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	path := flags.output
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	if err := configloader.WriteTemplate(path, config.TemplateOptions{Full: flags.full}, flags.force); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'figmark env' to see the environment overrides")
	return nil
}
