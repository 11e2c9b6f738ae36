package document_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/figmark/pkg/document"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		body  string
		title string
		lang  string
	}{
		{
			name: "no front matter",
			src:  "![](fig.png)\n",
			body: "![](fig.png)\n",
		},
		{
			name:  "yaml",
			src:   "---\ntitle: Gallery\nlang: de\n---\n![](fig.png)\n",
			body:  "![](fig.png)\n",
			title: "Gallery",
			lang:  "de",
		},
		{
			name:  "toml",
			src:   "+++\ntitle = \"Gallery\"\n+++\n![](fig.png)\n",
			body:  "![](fig.png)\n",
			title: "Gallery",
		},
		{
			name: "thematic break is not front matter",
			src:  "text\n\n---\n\nmore\n",
			body: "text\n\n---\n\nmore\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			doc, err := document.Parse("doc.md", []byte(testCase.src))
			require.NoError(t, err)

			assert.Equal(t, "doc.md", doc.Path)
			assert.Equal(t, testCase.body, strings.TrimLeft(string(doc.Body), "\n"))
			assert.Equal(t, testCase.title, doc.Title)
			assert.Equal(t, testCase.lang, doc.Lang)
		})
	}
}

func TestParse_CustomFields(t *testing.T) {
	t.Parallel()

	doc, err := document.Parse("doc.md", []byte("---\ntitle: T\nauthor: ada\n---\nbody\n"))
	require.NoError(t, err)

	assert.Equal(t, "T", doc.Meta[document.MetaTitle])
	assert.Equal(t, "ada", doc.Meta["author"])
	assert.NotContains(t, doc.Meta, document.MetaLang)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := document.Parse("bad.md", []byte("---\ntitle: [unclosed\n---\nbody\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.md")
}

func TestDocument_Env(t *testing.T) {
	t.Parallel()

	withLang, err := document.Parse("a.md", []byte("---\nlang: fr\ntitle: Album\n---\nx\n"))
	require.NoError(t, err)
	env := withLang.Env("en")
	assert.Equal(t, "fr", env.Language)
	assert.Equal(t, "Album", env.Meta[document.MetaTitle])

	plain, err := document.Parse("b.md", []byte("x\n"))
	require.NoError(t, err)
	assert.Equal(t, "en", plain.Env("en").Language)

	// Every call returns an independent environment.
	first := plain.Env("en")
	first.Meta["k"] = "v"
	assert.NotContains(t, plain.Env("en").Meta, "k")
}
