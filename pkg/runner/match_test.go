package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patterns []string
		path     string
		isDir    bool
		want     bool
	}{
		{name: "no patterns", path: "a.md", want: false},
		{name: "base name", patterns: []string{"*.tmp.md"}, path: "docs/x.tmp.md", want: true},
		{name: "star stays in segment", patterns: []string{"docs/*.md"}, path: "docs/sub/x.md", want: false},
		{name: "double star crosses segments", patterns: []string{"docs/**.md"}, path: "docs/sub/x.md", want: true},
		{name: "directory prefix", patterns: []string{"drafts/**"}, path: "drafts", isDir: true, want: true},
		{name: "file below directory", patterns: []string{"drafts/**"}, path: "drafts/a/b.md", want: true},
		{name: "nested directory anywhere", patterns: []string{"**/vendor/**"}, path: "x/vendor", isDir: true, want: true},
		{name: "unrelated", patterns: []string{"drafts/**"}, path: "docs/a.md", want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			m, err := compileGlobs(testCase.patterns)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, m.match(testCase.path, testCase.isDir))
		})
	}
}
