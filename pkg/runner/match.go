package runner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// matcher holds compiled ignore patterns. "*" stays within one path
// segment and "**" crosses segments.
type matcher []glob.Glob

// compileGlobs compiles patterns relative to the working directory.
func compileGlobs(patterns []string) (matcher, error) {
	globs := make(matcher, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// ValidateGlob reports whether pattern is usable as an ignore pattern.
func ValidateGlob(pattern string) error {
	_, err := compileGlobs([]string{pattern})
	return err
}

// match checks relPath, its base name and, for directories, relPath with a
// trailing slash so that "drafts/**" prunes the drafts directory itself.
func (m matcher) match(relPath string, isDir bool) bool {
	if len(m) == 0 {
		return false
	}

	relPath = filepath.ToSlash(relPath)
	candidates := []string{relPath, relPath[strings.LastIndex(relPath, "/")+1:]}
	if isDir {
		candidates = append(candidates, relPath+"/")
	}

	for _, g := range m {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}
