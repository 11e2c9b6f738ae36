package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/yaklabco/figmark/internal/logging"
	"github.com/yaklabco/figmark/pkg/config"
	"github.com/yaklabco/figmark/pkg/document"
	"github.com/yaklabco/figmark/pkg/figure"
	"github.com/yaklabco/figmark/pkg/fsutil"
	"github.com/yaklabco/figmark/pkg/markdown"
	"github.com/yaklabco/figmark/pkg/token"
)

// ErrOverwritesSource is returned when a file's output path is the file itself.
var ErrOverwritesSource = errors.New("output would overwrite source")

// Rendered is the HTML of one document with its counters.
type Rendered struct {
	HTML    string
	Title   string
	Figures int
	Media   int
}

// Runner renders documents with one configured engine. A Runner is safe for
// concurrent use.
type Runner struct {
	cfg    *config.Config
	engine *markdown.Engine
}

// New builds the engine described by cfg.
func New(cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	engine, err := cfg.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	return &Runner{cfg: cfg, engine: engine}, nil
}

// Config returns the configuration the runner was built with.
func (r *Runner) Config() *config.Config {
	return r.cfg
}

// Render renders one Markdown source. name labels errors and log entries.
func (r *Runner) Render(ctx context.Context, name string, src []byte) (*Rendered, error) {
	doc, err := document.Parse(name, src)
	if err != nil {
		return nil, err
	}

	env := doc.Env(r.cfg.Language)
	state, err := r.engine.Parse(ctx, doc.Body, env)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}

	return &Rendered{
		HTML:    r.engine.RenderTokens(state.Tokens, env),
		Title:   doc.Title,
		Figures: state.Counter(figure.CounterFigures),
		Media:   token.Count(state.Tokens, token.KindVideo) + token.Count(state.Tokens, token.KindAudio),
	}, nil
}

// OutputPath maps a source file to its output file. Without an output
// directory the output sits next to the source; otherwise it mirrors the
// source's position below workDir.
func (r *Runner) OutputPath(src, workDir string) string {
	out := strings.TrimSuffix(src, filepath.Ext(src)) + r.cfg.Output.Extension
	if r.cfg.Output.Dir == "" {
		return out
	}

	outDir := r.cfg.Output.Dir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	rel, err := filepath.Rel(workDir, out)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(out)
	}
	return filepath.Join(outDir, rel)
}

// RenderFile reads, renders and writes one file.
func (r *Runner) RenderFile(ctx context.Context, path, workDir string) (outcome FileOutcome) {
	start := time.Now()
	outcome.Path = path
	defer func() { outcome.Duration = time.Since(start) }()

	output := r.OutputPath(path, workDir)
	if filepath.Clean(output) == filepath.Clean(path) {
		outcome.Error = fmt.Errorf("%w: %s", ErrOverwritesSource, path)
		return outcome
	}

	src, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	ctx = logging.With(ctx, logging.FieldPath, path)
	rendered, err := r.Render(ctx, path, src)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, output, []byte(rendered.HTML), info.Mode.Perm())
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", output, err)
		return outcome
	}

	outcome.Output = output
	outcome.Written = written
	outcome.Figures = rendered.Figures
	outcome.Media = rendered.Media

	logging.FromContext(ctx).Debug("rendered",
		logging.FieldOutput, output,
		logging.FieldFigures, rendered.Figures,
		logging.FieldMedia, rendered.Media,
		logging.FieldDuration, time.Since(start))

	return outcome
}

// Run discovers files and renders them with a pool of workers. Outcomes are
// returned in path order whatever order the workers finish in. A failing
// file does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	logging.FromContext(ctx).Debug("files discovered", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))
	workCh := make(chan int)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				outcomes[idx] = r.RenderFile(ctx, files[idx], workDir)
				done[idx] = true
			}
		}()
	}

feed:
	for idx := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- idx:
		}
	}
	close(workCh)
	wg.Wait()

	for idx, outcome := range outcomes {
		if done[idx] {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}
