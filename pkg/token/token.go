// Package token provides the flat token stream that figmark rewrites and renders.
//
// The stream mirrors the shape produced by markdown-it: block-level open/close
// pairs surround "inline" tokens, and inline tokens hold the inline-level
// tokens of their block in Children.
package token

// Nesting values describe how a token affects element depth.
const (
	NestingOpen  = 1
	NestingSelf  = 0
	NestingClose = -1
)

// Token is one node of the render stream.
type Token struct {
	// Kind classifies what this token represents.
	Kind Kind

	// Tag is the HTML element name used when rendering.
	Tag string

	// Nesting is NestingOpen, NestingSelf or NestingClose.
	Nesting int

	// Attrs holds ordered attribute pairs. Lookups return the first match.
	Attrs []Attr

	// Children holds inline-level tokens for KindInline and media tokens.
	Children []*Token

	// Content is the literal content (text, code, raw label for media).
	Content string

	// Markup is the source marker ("*", "```", "-", ...).
	Markup string

	// Info is the fence info string.
	Info string

	// Block is true for block-level tokens.
	Block bool

	// Hidden suppresses rendering of the token itself (tight list paragraphs).
	Hidden bool
}

// New creates a token with the given kind, tag and nesting.
func New(kind Kind, tag string, nesting int) *Token {
	return &Token{
		Kind:    kind,
		Tag:     tag,
		Nesting: nesting,
	}
}

// NewBlock creates a block-level token.
func NewBlock(kind Kind, tag string, nesting int) *Token {
	tok := New(kind, tag, nesting)
	tok.Block = true
	return tok
}

// NewText creates a text token with the given content.
func NewText(content string) *Token {
	tok := New(KindText, "", NestingSelf)
	tok.Content = content
	return tok
}

// Retype changes the kind and tag of the token in place.
func (t *Token) Retype(kind Kind, tag string) {
	t.Kind = kind
	t.Tag = tag
}

// HasChildren returns true if the token has any children.
func (t *Token) HasChildren() bool {
	return len(t.Children) > 0
}

// ChildKinds returns the kinds of the direct children in order.
func (t *Token) ChildKinds() []Kind {
	kinds := make([]Kind, len(t.Children))
	for i, child := range t.Children {
		kinds[i] = child.Kind
	}
	return kinds
}
