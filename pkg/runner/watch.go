package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/figmark/internal/logging"
	"github.com/yaklabco/figmark/pkg/fsutil"
)

// WatchHooks receive watch events. Every hook is optional.
type WatchHooks struct {
	// Ready is called once the watches are in place.
	Ready func()

	// Rendered is called after each re-render.
	Rendered func(FileOutcome)

	// Error is called for watcher errors that do not stop the watch.
	Error func(error)
}

// Watch re-renders source files when they change, until ctx is done. It
// watches every directory that discovery would walk, including ones created
// later. Events that leave a file's content unchanged are ignored.
func (r *Runner) Watch(ctx context.Context, opts Options, hooks WatchHooks) error {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	w := &watch{
		runner:    r,
		watcher:   watcher,
		hooks:     hooks,
		explicit:  make(map[string]bool),
		snapshots: make(map[string]*fsutil.FileInfo),
		walker: &walker{
			ctx:        ctx,
			workDir:    workDir,
			extensions: opts.effectiveExtensions(),
			exclude:    exclude,
			follow:     opts.FollowSymlinks,
			seen:       make(map[string]struct{}),
		},
	}

	for _, path := range opts.effectivePaths() {
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			if err := w.addTree(path); err != nil {
				return err
			}
			continue
		}
		w.explicit[path] = true
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
		}
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return err
	}
	for _, file := range files {
		w.snapshot(ctx, file)
	}

	log := logging.FromContext(ctx)
	log.Info("watching for changes", logging.FieldFilesDiscovered, len(files))
	if hooks.Ready != nil {
		hooks.Ready()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.report(fmt.Errorf("watch: %w", werr))
		}
	}
}

type watch struct {
	runner    *Runner
	watcher   *fsnotify.Watcher
	walker    *walker
	hooks     WatchHooks
	explicit  map[string]bool
	snapshots map[string]*fsutil.FileInfo
}

// addTree watches root and every directory below it that discovery walks.
func (w *watch) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(entry.Name(), ".") || w.walker.exclude.match(w.walker.rel(path), true)) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch directory %s: %w", root, err)
	}
	return nil
}

func (w *watch) handle(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	path := filepath.Clean(event.Name)
	info, err := os.Stat(path)
	if err != nil {
		// Removed again before we got to it.
		return
	}

	if info.IsDir() {
		if !w.explicit[path] {
			if err := w.addTree(path); err != nil {
				w.report(err)
			}
		}
		return
	}

	if !w.explicit[path] && (strings.HasPrefix(filepath.Base(path), ".") || !w.walker.matches(path)) {
		return
	}

	if previous, ok := w.snapshots[path]; ok {
		modified, err := fsutil.CheckModified(ctx, previous)
		if err == nil && !modified {
			return
		}
	}

	outcome := w.runner.RenderFile(ctx, path, w.walker.workDir)
	w.snapshot(ctx, path)

	log := logging.FromContext(ctx)
	if outcome.Error != nil {
		log.Error("render failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
	} else {
		log.Info("rendered", logging.FieldPath, path, logging.FieldOutput, outcome.Output,
			logging.FieldFigures, outcome.Figures)
	}
	if w.hooks.Rendered != nil {
		w.hooks.Rendered(outcome)
	}
}

func (w *watch) snapshot(ctx context.Context, path string) {
	_, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		if !errors.Is(err, fsutil.ErrNotFound) {
			w.report(err)
		}
		delete(w.snapshots, path)
		return
	}
	w.snapshots[path] = info
}

func (w *watch) report(err error) {
	if w.hooks.Error != nil {
		w.hooks.Error(err)
	}
}
