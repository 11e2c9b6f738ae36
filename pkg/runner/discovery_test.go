package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/figmark/pkg/runner"
)

// tree creates files below a fresh temp directory and returns it.
func tree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func rel(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"readme.md":              "",
		"docs/guide.md":          "",
		"docs/api.markdown":      "",
		"docs/UPPER.MD":          "",
		"docs/page.html":         "",
		"src/main.go":            "",
		"notes.txt":              "",
		".hidden.md":             "",
		".git/config.md":         "",
		"drafts/wip.md":          "",
		"a/node_modules/x/y.md":  "",
		"docs/scratch.tmp.md":    "",
		"docs/deep/nested/n.md":  "",
	}

	tests := []struct {
		name string
		opts func(dir string) runner.Options
		want []string
	}{
		{
			name: "directory walk",
			opts: func(dir string) runner.Options {
				return runner.Options{WorkingDir: dir}
			},
			want: []string{
				"a/node_modules/x/y.md", "docs/UPPER.MD", "docs/api.markdown", "docs/deep/nested/n.md",
				"docs/guide.md", "docs/scratch.tmp.md", "drafts/wip.md", "readme.md",
			},
		},
		{
			name: "exclude globs",
			opts: func(dir string) runner.Options {
				return runner.Options{
					WorkingDir:   dir,
					ExcludeGlobs: []string{"drafts/**", "**/node_modules/**", "*.tmp.md", "docs/deep"},
				}
			},
			want: []string{"docs/UPPER.MD", "docs/api.markdown", "docs/guide.md", "readme.md"},
		},
		{
			name: "custom extensions",
			opts: func(dir string) runner.Options {
				return runner.Options{WorkingDir: dir, Paths: []string{"docs"}, Extensions: []string{".markdown"}}
			},
			want: []string{"docs/api.markdown"},
		},
		{
			name: "explicit files bypass filters and deduplicate",
			opts: func(dir string) runner.Options {
				return runner.Options{
					WorkingDir:   dir,
					Paths:        []string{"notes.txt", "docs/deep", filepath.Join(dir, "docs", "deep", "nested", "n.md")},
					ExcludeGlobs: []string{"*.txt"},
				}
			},
			want: []string{"docs/deep/nested/n.md", "notes.txt"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := tree(t, files)
			got, err := runner.Discover(context.Background(), testCase.opts(dir))
			require.NoError(t, err)
			assert.Equal(t, testCase.want, rel(t, dir, got))
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.md": ""})

	_, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Paths: []string{"missing"}})
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, ExcludeGlobs: []string{"[unclosed"}})
	require.Error(t, err)
	require.Error(t, runner.ValidateGlob("[unclosed"))
	require.NoError(t, runner.ValidateGlob("docs/**/*.md"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	dir := tree(t, map[string]string{"target/linked.md": "", "root/own.md": ""})
	require.NoError(t, os.Symlink(filepath.Join(dir, "target"), filepath.Join(dir, "root", "link")))

	root := filepath.Join(dir, "root")

	got, err := runner.Discover(context.Background(), runner.Options{WorkingDir: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"own.md"}, rel(t, root, got))

	got, err = runner.Discover(context.Background(), runner.Options{WorkingDir: root, FollowSymlinks: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"own.md", "../target/linked.md"}, rel(t, root, got))
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{".md", ".markdown"}, runner.DefaultExtensions())
}
