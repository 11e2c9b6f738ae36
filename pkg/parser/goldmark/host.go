package goldmark

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/figmark/pkg/media"
	"github.com/yaklabco/figmark/pkg/token"
)

// host exposes goldmark to the media classifier.
type host struct {
	parser *Parser
}

var _ media.Host = (*host)(nil)

func (h *host) ParseLinkLabel(src []byte, start, max int) int {
	return parseLinkLabel(src, start, max)
}

func (h *host) ParseLinkDestination(src []byte, pos, max int) media.LinkResult {
	return parseLinkDestination(src, pos, max)
}

func (h *host) ParseLinkTitle(src []byte, pos, max int) media.LinkResult {
	return parseLinkTitle(src, pos, max)
}

func (h *host) NormalizeLink(raw string) string { return normalizeLink(raw) }

func (h *host) ValidateLink(url string) bool { return validateLink(url) }

func (h *host) NormalizeReference(label string) string { return normalizeReference(label) }

// ParseInline parses a media label as a lone paragraph and returns the
// paragraph's inline tokens. The document's reference definitions are visible
// to the nested parse.
func (h *host) ParseInline(content string, env *token.Env) []*token.Token {
	if content == "" {
		return nil
	}

	src := []byte(content)
	pc := parser.NewContext()
	if env != nil {
		pc.Set(envKey, env)
		for _, ref := range goldmarkReferences(env.References) {
			pc.AddReference(ref)
		}
	}

	doc := h.parser.labelParser().Parse(text.NewReader(src), parser.WithContext(pc))

	var out []*token.Token
	m := newMapper(src)
	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		if block.Kind() != ast.KindParagraph {
			continue
		}
		if out != nil {
			out = append(out, token.New(token.KindSoftbreak, "br", token.NestingSelf))
		}
		out = append(out, m.mapInlineChildren(block)...)
	}
	return out
}
