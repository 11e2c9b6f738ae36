package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/figmark/internal/ui/pretty"
	"github.com/yaklabco/figmark/pkg/document"
)

type tokensFlags struct {
	engine   engineFlags
	counters bool
}

func newTokensCommand() *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a Markdown file",
		Long: `Print the token stream a Markdown file renders from, after every core
rule (figures included) has run. Use "-" to read from stdin.

Examples:
  figmark tokens README.md
  figmark tokens --figcaption --counters page.md`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: tokens takes exactly one file, got %d", ErrInvalidUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.counters, "counters", false, "print the engine counters after the tokens")
	addEngineFlags(cmd, &flags.engine)

	return cmd
}

func runTokens(cmd *cobra.Command, path string, flags *tokensFlags) error {
	ctx := commandContext(cmd)

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}
	overrides, err := flags.engine.overrides(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, workDir, overrides)
	if err != nil {
		return err
	}

	name, src, err := readSource(cmd, workDir, path)
	if err != nil {
		return err
	}

	doc, err := document.Parse(name, src)
	if err != nil {
		return err
	}
	engine, err := cfg.NewEngine()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	state, err := engine.Parse(ctx, doc.Body, doc.Env(cfg.Language))
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Color), out))
	fmt.Fprint(out, styles.FormatTokens(state.Tokens))

	if flags.counters {
		counters := state.Counters()
		names := make([]string, 0, len(counters))
		for counter := range counters {
			names = append(names, counter)
		}
		sort.Strings(names)

		fmt.Fprintln(out)
		for _, counter := range names {
			fmt.Fprintf(out, "%s %s\n", styles.Dim.Render(counter+":"), styles.Count.Render(strconv.Itoa(counters[counter])))
		}
	}
	return nil
}

// readSource reads path relative to workDir, or stdin for "-".
func readSource(cmd *cobra.Command, workDir, path string) (string, []byte, error) {
	if path == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return stdinName, src, nil
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	return path, src, nil
}
