// Package document splits a Markdown source into front matter and body and
// prepares the render environment from it.
package document

import (
	"bytes"
	"fmt"
	"maps"

	"github.com/adrg/frontmatter"

	"github.com/yaklabco/figmark/pkg/token"
)

// Meta keys copied into the render environment.
const (
	MetaTitle = "title"
	MetaLang  = "lang"
)

// Document is a parsed Markdown source.
type Document struct {
	// Path is the source path, or a display name for stdin.
	Path string

	// Body is the Markdown without the front matter block.
	Body []byte

	// Title and Lang come from the front matter and may be empty.
	Title string
	Lang  string

	// Meta holds every front matter field.
	Meta map[string]any
}

type envelope struct {
	Title  string         `yaml:"title" toml:"title" json:"title"`
	Lang   string         `yaml:"lang" toml:"lang" json:"lang"`
	Custom map[string]any `yaml:",inline"`
}

// Parse splits src into front matter and body. YAML (---), TOML (+++) and
// JSON front matter are recognized; a source without one is all body.
func Parse(path string, src []byte) (*Document, error) {
	var meta envelope

	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter %s: %w", path, err)
	}

	raw := make(map[string]any, len(meta.Custom)+2)
	maps.Copy(raw, meta.Custom)
	if meta.Title != "" {
		raw[MetaTitle] = meta.Title
	}
	if meta.Lang != "" {
		raw[MetaLang] = meta.Lang
	}

	return &Document{
		Path:  path,
		Body:  body,
		Title: meta.Title,
		Lang:  meta.Lang,
		Meta:  raw,
	}, nil
}

// Env returns a fresh render environment. The document's lang wins over
// defaultLang.
func (d *Document) Env(defaultLang string) *token.Env {
	lang := defaultLang
	if d.Lang != "" {
		lang = d.Lang
	}

	env := token.NewEnv(lang)
	maps.Copy(env.Meta, d.Meta)
	return env
}
