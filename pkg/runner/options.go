// Package runner renders Markdown files to HTML concurrently.
package runner

// Options controls which files a run renders.
type Options struct {
	// Paths are files or directories to render. Defaults to the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors ignore patterns and the
	// output tree. Defaults to the process working directory.
	WorkingDir string

	// Extensions are the source extensions (with leading dot) rendered when
	// walking directories. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files and directories, relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent renders.
	// 0 or negative means runtime.NumCPU().
	Jobs int
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
