// Package goldmark adapts the goldmark parser to figmark's flat token stream.
//
// goldmark builds the block and inline tree; the adapter flattens it into the
// markdown-it style token list that the figure rewriter and the HTML renderer
// work on. The adapter also hosts the media classifier, which takes over the
// "![" trigger ahead of goldmark's own image parser.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/figmark/pkg/media"
	"github.com/yaklabco/figmark/pkg/token"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Option configures a Parser.
type Option func(*settings)

type settings struct {
	media      bool
	attributes bool
	linkify    bool
}

// WithMediaClassifier recognizes audio and video destinations in image syntax.
func WithMediaClassifier() Option {
	return func(s *settings) { s.media = true }
}

// WithAttributes enables "{.class key=value}" blocks after images.
func WithAttributes() Option {
	return func(s *settings) { s.attributes = true }
}

// WithLinkify turns bare URLs into links. The gfm flavor always does.
func WithLinkify() Option {
	return func(s *settings) { s.linkify = true }
}

// Parser turns Markdown source into a flat token stream using goldmark.
// Configuration methods must not be called concurrently with Parse; Parse
// itself is safe for concurrent use.
type Parser struct {
	flavor     string
	settings   settings
	classifier *media.Classifier
	md         goldmark.Markdown
	labels     parser.Parser
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string, opts ...Option) *Parser {
	p := &Parser{flavor: flavorOrDefault(flavor)}
	for _, opt := range opts {
		opt(&p.settings)
	}
	p.classifier = media.NewClassifier(&host{parser: p})
	p.build()
	return p
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// EnableMediaClassifier installs the media classifier in place of goldmark's
// image recognition, for documents and for media labels alike.
func (p *Parser) EnableMediaClassifier() {
	if p.settings.media {
		return
	}
	p.settings.media = true
	p.build()
}

// MediaClassifier reports whether the media classifier is installed.
func (p *Parser) MediaClassifier() bool {
	return p.settings.media
}

// EnableAttributes turns on attribute blocks after images.
func (p *Parser) EnableAttributes() {
	if p.settings.attributes {
		return
	}
	p.settings.attributes = true
	p.build()
}

// Parse converts Markdown source into block tokens whose inline tokens carry
// their children.
//
// Link reference definitions found in src are added to env.References,
// after any references the caller already supplied there. A nil env is
// treated as an empty one.
func (p *Parser) Parse(ctx context.Context, src []byte, env *token.Env) ([]*token.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	if env == nil {
		env = token.NewEnv("")
	}

	content := copyContent(src)
	pc := parser.NewContext()

	// Inline recognizers see the document's definitions as soon as block
	// parsing has collected them.
	scoped := *env
	scoped.References = chainReferences(contextReferences{pc: pc}, env.References)
	pc.Set(envKey, &scoped)

	doc := p.md.Parser().Parse(text.NewReader(content), parser.WithContext(pc))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	env.References = chainReferences(collectReferences(pc), env.References)

	return newMapper(content).mapDocument(doc), nil
}

func (p *Parser) labelParser() parser.Parser {
	return p.labels
}

func (p *Parser) build() {
	p.md = newGoldmarkInstance(p.flavor, p.settings, p.extraInlineParsers())
	p.labels = newLabelParser(p.flavor, p.settings, p.extraInlineParsers())
}

func (p *Parser) extraInlineParsers() []util.PrioritizedValue {
	var ips []util.PrioritizedValue
	if p.settings.media {
		ips = append(ips, util.Prioritized(&mediaParser{classifier: p.classifier}, mediaParserPriority))
	}
	if p.settings.attributes {
		ips = append(ips, util.Prioritized(attributeParser{}, attributeParserPriority))
	}
	return ips
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
// The inline parsers are sorted together when the parser is built, which is
// what lets the media parser run before goldmark's link parser.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string, s settings, extra []util.PrioritizedValue) goldmark.Markdown {
	inline := append(parser.DefaultInlineParsers(), extra...)
	base := parser.NewParser(
		parser.WithBlockParsers(parser.DefaultBlockParsers()...),
		parser.WithInlineParsers(inline...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)

	var exts []goldmark.Extender

	// Configure extensions based on flavor.
	switch flavor {
	case FlavorGFM:
		exts = append(exts, extension.GFM)
	case FlavorCommonMark:
		if s.linkify {
			exts = append(exts, extension.Linkify)
		}
	}

	return goldmark.New(
		goldmark.WithParser(base),
		goldmark.WithExtensions(exts...),
	)
}

// newLabelParser builds the parser used for media labels: paragraphs only,
// and no link reference definitions, so a label is always inline content.
//
//nolint:ireturn // parser.Parser is an external interface type
func newLabelParser(flavor string, s settings, extra []util.PrioritizedValue) parser.Parser {
	inline := append(parser.DefaultInlineParsers(), extra...)
	if flavor == FlavorGFM {
		inline = append(inline, util.Prioritized(extension.NewStrikethroughParser(), 500))
	}
	if flavor == FlavorGFM || s.linkify {
		inline = append(inline, util.Prioritized(extension.NewLinkifyParser(), 999))
	}

	return parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(inline...),
	)
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
