// Package figure promotes paragraphs that hold nothing but a single image,
// optionally wrapped in a link, to <figure> elements.
//
// The rewrite works on the flat token stream produced by pkg/markdown. It only
// ever retypes the paragraph_open and paragraph_close tokens around a matching
// inline token and splices tokens into that inline token's children. The outer
// token list keeps its length and order.
package figure

import (
	"strconv"

	"github.com/yaklabco/figmark/pkg/media"
	"github.com/yaklabco/figmark/pkg/token"
)

// Data types written to the data-type attribute.
const (
	DataTypeImage = "image"
	DataTypeVideo = "video"
)

// Options enables the figure enrichments. All are off in the zero value.
type Options struct {
	// DataType adds data-type="image" or data-type="video" to the figure.
	DataType bool

	// Link wraps a bare image in a link to its own source.
	Link bool

	// Figcaption moves the image label into a <figcaption>.
	Figcaption bool

	// CopyAttrs copies the filtered image attributes onto the figure,
	// replacing whatever the figure had.
	CopyAttrs AttrFilter

	// TabIndex numbers the figures of one document 1, 2, 3...
	TabIndex bool

	// Media replaces the image recognizer with the media classifier and
	// renders video and audio tokens as HTML5 elements.
	Media bool

	// VideoAttrs and AudioAttrs are inserted into media tags verbatim.
	VideoAttrs string
	AudioAttrs string

	// Translator supplies the media fallback text. The default catalog is
	// used when nil.
	Translator media.Translator
}

// DefaultOptions returns options with the media classifier on, the default
// player attributes, and every figure enrichment off.
func DefaultOptions() Options {
	return Options{
		Media:      true,
		VideoAttrs: media.DefaultVideoAttrs,
		AudioAttrs: media.DefaultAudioAttrs,
	}
}

// Rewriter promotes eligible paragraphs to figures. A Rewriter holds no
// per-document state and may be shared between goroutines.
type Rewriter struct {
	opts Options
}

// NewRewriter returns a rewriter for opts.
func NewRewriter(opts Options) *Rewriter {
	return &Rewriter{opts: opts}
}

// Options returns the rewriter's configuration.
func (r *Rewriter) Options() Options {
	return r.opts
}

// pass is the state of a single Rewrite call.
type pass struct {
	opts     *Options
	tabIndex int
}

// Rewrite promotes every eligible paragraph in tokens and returns the number
// of figures created. The tab index starts at 1 on every call.
func (r *Rewriter) Rewrite(tokens []*token.Token) int {
	p := &pass{opts: &r.opts, tabIndex: 1}

	promoted := 0
	// The first and last tokens can never sit between a paragraph pair.
	for i := 1; i < len(tokens)-1; i++ {
		if p.promote(tokens, i) {
			promoted++
		}
	}
	return promoted
}

// Eligible reports whether tokens[i] is an inline token holding a lone image,
// bare or linked, between a paragraph_open and a paragraph_close.
func Eligible(tokens []*token.Token, i int) bool {
	if i < 1 || i >= len(tokens)-1 {
		return false
	}

	tok := tokens[i]
	if tok == nil || tok.Kind != token.KindInline {
		return false
	}

	if !singleImage(tok.Children) {
		return false
	}

	return tokens[i-1].Kind == token.KindParagraphOpen &&
		tokens[i+1].Kind == token.KindParagraphClose
}

func singleImage(children []*token.Token) bool {
	switch len(children) {
	case 1:
		return children[0].Kind == token.KindImage
	case 3:
		return children[0].Kind == token.KindLinkOpen &&
			children[1].Kind == token.KindImage &&
			children[2].Kind == token.KindLinkClose
	default:
		return false
	}
}

func (p *pass) promote(tokens []*token.Token, i int) bool {
	if !Eligible(tokens, i) {
		return false
	}

	inline := tokens[i]
	figure := tokens[i-1]
	figure.Retype(token.KindFigureOpen, "figure")
	tokens[i+1].Retype(token.KindFigureClose, "figure")

	// Enrichments run in a fixed order: the link wrapper moves the image,
	// and the copied attributes must see the final image.
	if p.opts.DataType {
		figure.AttrPush("data-type", dataType(imageOf(inline)))
	}

	if p.opts.Link && len(inline.Children) == 1 {
		wrapInLink(inline)
	}

	image := imageOf(inline)

	if p.opts.Figcaption && len(image.Children) > 0 {
		moveToCaption(inline, image)
	}

	if p.opts.CopyAttrs.Enabled() {
		figure.Attrs = image.CopyAttrs(p.opts.CopyAttrs.Match)
	}

	if p.opts.TabIndex {
		figure.AttrPush("tabindex", strconv.Itoa(p.tabIndex))
		p.tabIndex++
	}

	return true
}

// imageOf returns the image child: the only child, or the middle one of a
// link_open, image, link_close triple.
func imageOf(inline *token.Token) *token.Token {
	if len(inline.Children) == 1 {
		return inline.Children[0]
	}
	return inline.Children[1]
}

// dataType classifies the figure by the image source. Only mp4, webm and ogg
// count as video here; everything else, including a missing source, is image.
func dataType(image *token.Token) string {
	src, ok := image.AttrGet("src")
	if !ok {
		return DataTypeImage
	}
	switch media.Extension(src) {
	case "mp4", "webm", "ogg":
		return DataTypeVideo
	default:
		return DataTypeImage
	}
}

func wrapInLink(inline *token.Token) {
	image := inline.Children[0]
	src, ok := image.AttrGet("src")
	if !ok {
		return
	}

	open := token.New(token.KindLinkOpen, "a", token.NestingOpen)
	open.AttrPush("href", src)
	closing := token.New(token.KindLinkClose, "a", token.NestingClose)

	inline.Children = []*token.Token{open, image, closing}
}

func moveToCaption(inline, image *token.Token) {
	children := make([]*token.Token, 0, len(inline.Children)+len(image.Children)+2)
	children = append(children, inline.Children...)
	children = append(children, token.New(token.KindFigcaptionOpen, "figcaption", token.NestingOpen))
	children = append(children, image.Children...)
	children = append(children, token.New(token.KindFigcaptionClose, "figcaption", token.NestingClose))

	inline.Children = children
	image.Children = nil
}
