package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/figmark/internal/configloader"
	"github.com/yaklabco/figmark/internal/logging"
	"github.com/yaklabco/figmark/internal/ui/pretty"
	"github.com/yaklabco/figmark/pkg/config"
	"github.com/yaklabco/figmark/pkg/runner"
)

// stdinName labels standard input in errors and logs.
const stdinName = "<stdin>"

type renderFlags struct {
	engine    engineFlags
	outDir    string
	extension string
	ignore    []string
	jobs      int
	watch     bool
	summary   bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render Markdown files to HTML",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	defaults := config.NewConfig()
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "write HTML below this directory instead of next to each source")
	cmd.Flags().StringVar(&flags.extension, "extension", defaults.Output.Extension, "extension of rendered files")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip (adds to the configured ones)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render files when they change")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a table of rendered files and a summary")
	addEngineFlags(cmd, &flags.engine)

	return cmd
}

const renderLongDescription = `Render Markdown files to HTML.

By default, renders all .md and .markdown files in the current directory
and subdirectories, writing each page next to its source. Specify paths to
render specific files or directories. With no paths and piped input, the
document is read from stdin and the HTML is written to stdout.

Examples:
  figmark render                          # Render the current directory
  figmark render docs/ -o public          # Mirror docs/ into public/
  figmark render README.md --figcaption   # Render one file with captions
  figmark render --watch                  # Re-render on change
  cat page.md | figmark render            # Render stdin to stdout`

func (f *renderFlags) overrides(cmd *cobra.Command) ([]configloader.Override, error) {
	overrides, err := f.engine.overrides(cmd)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("out-dir") {
		dir := f.outDir
		overrides = append(overrides, func(c *config.Config) { c.Output.Dir = dir })
	}
	if changed("extension") {
		ext := f.extension
		overrides = append(overrides, func(c *config.Config) { c.Output.Extension = ext })
	}
	if changed("ignore") {
		ignore := f.ignore
		overrides = append(overrides, func(c *config.Config) { c.Ignore = append(c.Ignore, ignore...) })
	}
	if changed("jobs") {
		jobs := f.jobs
		overrides = append(overrides, func(c *config.Config) { c.Jobs = jobs })
	}

	watch, summary := f.watch, f.summary
	overrides = append(overrides, func(c *config.Config) {
		c.Watch = watch
		c.Summary = summary
	})
	return overrides, nil
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	ctx := commandContext(cmd)

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	overrides, err := flags.overrides(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, workDir, overrides)
	if err != nil {
		return err
	}

	r, err := runner.New(cfg)
	if err != nil {
		return err
	}

	if len(args) == 0 && !isTerminal(cmd.InOrStdin()) {
		if cfg.Watch {
			return fmt.Errorf("%w: --watch needs paths or a directory, not stdin", ErrInvalidUsage)
		}
		return renderStdin(ctx, cmd, r)
	}

	opts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
	}

	logger := logging.FromContext(ctx)
	logger.Debug("starting render",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
		logging.FieldWatch, cfg.Watch,
	)

	result, err := r.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("render run failed: %w", err)
	}
	logger.Debug("render finished",
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldDuration, result.Stats.Duration,
	)

	colorMode := string(cfg.Color)
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
	report(cmd, styles, result, workDir, cfg.Summary)

	if cfg.Watch {
		return watch(ctx, cmd, r, opts, styles)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrRenderFailed
	}
	return nil
}

// report logs each failure and prints the run summary.
func report(cmd *cobra.Command, styles *pretty.Styles, result *runner.Result, workDir string, summary bool) {
	logger := logging.FromContext(commandContext(cmd))
	for _, failed := range result.Failed() {
		logger.Error("render failed", logging.FieldPath, failed.Path, logging.FieldError, failed.Error)
	}

	out := cmd.OutOrStdout()
	if !summary {
		fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))
		return
	}

	table := pretty.NewTableFormatter(styles, terminalWidth(out))
	fmt.Fprint(out, table.FormatTable(result, workDir))
	fmt.Fprint(out, styles.FormatSummary(result.Stats))
}

func watch(ctx context.Context, cmd *cobra.Command, r *runner.Runner, opts runner.Options, styles *pretty.Styles) error {
	logger := logging.FromContext(ctx)
	out := cmd.OutOrStdout()

	err := r.Watch(ctx, opts, runner.WatchHooks{
		Rendered: func(outcome runner.FileOutcome) {
			if outcome.Error != nil {
				return
			}
			rel, relErr := filepath.Rel(opts.WorkingDir, outcome.Output)
			if relErr != nil {
				rel = outcome.Output
			}
			fmt.Fprintf(out, "%s %s\n", styles.Output.Render(rel),
				styles.Dim.Render(fmt.Sprintf("(%d figures, %d media)", outcome.Figures, outcome.Media)))
		},
		Error: func(err error) {
			logger.Warn("watch", logging.FieldError, err)
		},
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

func renderStdin(ctx context.Context, cmd *cobra.Command, r *runner.Runner) error {
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	rendered, err := r.Render(logging.With(ctx, logging.FieldPath, stdinName), stdinName, src)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(cmd.OutOrStdout(), rendered.HTML); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// isTerminal reports whether r is an interactive terminal. Readers that are
// not files, such as pipes set up in tests, are not terminals.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or zero when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
