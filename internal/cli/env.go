package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/figmark/internal/configloader"
	"github.com/yaklabco/figmark/internal/ui/pretty"
)

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the FIGMARK_* environment variables",
		Long: `List the environment variables that override configuration files.
Command-line flags still take precedence over them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := configloader.ListEnvVars()
			names := make([]string, 0, len(vars))
			width := 0
			for name := range vars {
				names = append(names, name)
				width = max(width, len(name))
			}
			sort.Strings(names)

			color, err := cmd.Flags().GetString("color")
			if err != nil {
				return fmt.Errorf("get color flag: %w", err)
			}
			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(color, out))
			for _, name := range names {
				fmt.Fprintf(out, "%s  %s\n", styles.Bold.Render(fmt.Sprintf("%-*s", width, name)), vars[name])
			}
			return nil
		},
	}
}
