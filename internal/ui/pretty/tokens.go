package pretty

import (
	"strconv"
	"strings"

	"github.com/yaklabco/figmark/pkg/token"
)

const (
	tokenIndent      = "  "
	maxContentLength = 60
)

// FormatTokens renders a token stream as an indented tree, one token per
// line. Block nesting and inline children both increase the indent.
//
//	paragraph_open <p>
//	  inline "![](fig.png)"
//	    image <img> src="fig.png"
func (s *Styles) FormatTokens(tokens []*token.Token) string {
	var builder strings.Builder
	s.writeTokens(&builder, tokens, 0)
	return builder.String()
}

func (s *Styles) writeTokens(builder *strings.Builder, tokens []*token.Token, depth int) {
	level := depth
	for _, tok := range tokens {
		if tok.Nesting == token.NestingClose {
			level--
		}
		s.writeToken(builder, tok, max(level, depth))
		if len(tok.Children) > 0 {
			s.writeTokens(builder, tok.Children, max(level, depth)+1)
		}
		if tok.Nesting == token.NestingOpen {
			level++
		}
	}
}

func (s *Styles) writeToken(builder *strings.Builder, tok *token.Token, level int) {
	builder.WriteString(strings.Repeat(tokenIndent, level))
	builder.WriteString(s.TokenKind.Render(tok.Kind.String()))

	if tok.Tag != "" {
		builder.WriteString(" ")
		builder.WriteString(s.TokenTag.Render("<" + tok.Tag + ">"))
	}
	for _, attr := range tok.Attrs {
		builder.WriteString(" ")
		builder.WriteString(s.TokenAttr.Render(attr.Name + "=" + strconv.Quote(attr.Value)))
	}
	if tok.Info != "" {
		builder.WriteString(" ")
		builder.WriteString(s.TokenAttr.Render("info=" + strconv.Quote(tok.Info)))
	}
	if tok.Content != "" {
		builder.WriteString(" ")
		builder.WriteString(s.TokenContent.Render(strconv.Quote(truncateString(tok.Content, maxContentLength))))
	}
	if tok.Hidden {
		builder.WriteString(" ")
		builder.WriteString(s.TokenHidden.Render("(hidden)"))
	}
	builder.WriteString("\n")
}
