// Package html renders a figmark token stream to HTML.
//
// Output follows markdown-it's renderer: block tokens get a trailing newline
// unless they directly wrap inline content, hidden tokens (tight list
// paragraphs) produce nothing, and an image's alt attribute is derived from
// its children as plain text.
package html

import (
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/figmark/pkg/token"
)

// Rule renders tokens[idx]. Rules are looked up by token kind before the
// generic tag rendering is used.
type Rule func(tokens []*token.Token, idx int, env *token.Env, r *Renderer) string

// LanguageDetector names the language of an unlabeled code fence, or returns
// "" when it cannot tell.
type LanguageDetector func(code []byte) string

// Option configures a Renderer.
type Option func(*Renderer)

// WithXHTML closes void elements with " /".
func WithXHTML() Option {
	return func(r *Renderer) { r.xhtml = true }
}

// WithLangPrefix sets the class prefix for fenced code languages.
func WithLangPrefix(prefix string) Option {
	return func(r *Renderer) { r.langPrefix = prefix }
}

// WithLanguageDetector labels fences that have no info string.
func WithLanguageDetector(detect LanguageDetector) Option {
	return func(r *Renderer) { r.detect = detect }
}

// DefaultLangPrefix is the class prefix for fenced code languages.
const DefaultLangPrefix = "language-"

// Renderer turns tokens into HTML. Rules must be registered before the
// renderer is shared between goroutines.
type Renderer struct {
	rules      map[token.Kind]Rule
	xhtml      bool
	langPrefix string
	detect     LanguageDetector
}

// New returns a renderer with the default rules.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		rules:      defaultRules(),
		langPrefix: DefaultLangPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetRule registers rule for kind, replacing any existing rule.
func (r *Renderer) SetRule(kind token.Kind, rule Rule) {
	if rule == nil {
		delete(r.rules, kind)
		return
	}
	r.rules[kind] = rule
}

// Rule returns the rule registered for kind.
func (r *Renderer) Rule(kind token.Kind) (Rule, bool) {
	rule, ok := r.rules[kind]
	return rule, ok
}

// XHTML reports whether void elements are closed with " /".
func (r *Renderer) XHTML() bool {
	return r.xhtml
}

// Render renders a block token stream.
func (r *Renderer) Render(tokens []*token.Token, env *token.Env) string {
	var buf strings.Builder
	for i, tok := range tokens {
		if tok.Kind == token.KindInline {
			buf.WriteString(r.RenderInline(tok.Children, env))
			continue
		}
		if rule, ok := r.rules[tok.Kind]; ok {
			buf.WriteString(rule(tokens, i, env, r))
			continue
		}
		buf.WriteString(r.RenderToken(tokens, i))
	}
	return buf.String()
}

// RenderInline renders the children of an inline token.
func (r *Renderer) RenderInline(tokens []*token.Token, env *token.Env) string {
	var buf strings.Builder
	for i, tok := range tokens {
		if rule, ok := r.rules[tok.Kind]; ok {
			buf.WriteString(rule(tokens, i, env, r))
			continue
		}
		buf.WriteString(r.RenderToken(tokens, i))
	}
	return buf.String()
}

// RenderToken renders a token as a plain HTML tag.
func (r *Renderer) RenderToken(tokens []*token.Token, idx int) string {
	tok := tokens[idx]
	if tok.Hidden {
		return ""
	}

	var buf strings.Builder

	// A block opening right after a hidden paragraph starts on a new line.
	if tok.Block && tok.Nesting != token.NestingClose && idx > 0 && tokens[idx-1].Hidden {
		buf.WriteByte('\n')
	}

	if tok.Nesting == token.NestingClose {
		buf.WriteString("</")
	} else {
		buf.WriteByte('<')
	}
	buf.WriteString(tok.Tag)
	buf.WriteString(RenderAttrs(tok))

	if tok.Nesting == token.NestingSelf && r.xhtml {
		buf.WriteString(" /")
	}

	needLF := false
	if tok.Block {
		needLF = true
		if tok.Nesting == token.NestingOpen && idx+1 < len(tokens) {
			next := tokens[idx+1]
			switch {
			case next.Kind == token.KindInline || next.Hidden:
				needLF = false
			case next.Nesting == token.NestingClose && next.Tag == tok.Tag:
				needLF = false
			}
		}
	}

	if needLF {
		buf.WriteString(">\n")
	} else {
		buf.WriteByte('>')
	}
	return buf.String()
}

// RenderAttrs renders a token's attributes, each preceded by a space.
func RenderAttrs(tok *token.Token) string {
	var buf strings.Builder
	for _, attr := range tok.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(Escape(attr.Name))
		buf.WriteString(`="`)
		buf.WriteString(Escape(attr.Value))
		buf.WriteByte('"')
	}
	return buf.String()
}

// RenderInlineAsText renders inline tokens as plain text, as used for alt
// attributes. Markup is dropped and only text content is kept.
func RenderInlineAsText(tokens []*token.Token) string {
	var buf strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case token.KindText, token.KindHTMLInline, token.KindHTMLBlock:
			buf.WriteString(tok.Content)
		case token.KindImage, token.KindVideo, token.KindAudio:
			buf.WriteString(RenderInlineAsText(tok.Children))
		case token.KindSoftbreak, token.KindHardbreak:
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

// Escape escapes &, <, > and " for use in HTML text and attribute values.
func Escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
