package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/figmark/pkg/token"
)

// mapInlineChildren flattens the inline children of a block node. Links and
// emphasis become open/close pairs around their content; only images and
// media tokens carry children of their own.
func (m *mapper) mapInlineChildren(gmParent ast.Node) []*token.Token {
	var out []*token.Token
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		out = m.mapInline(child, out)
	}
	return out
}

// mapInline appends the tokens for one goldmark inline node to out.
func (m *mapper) mapInline(gmNode ast.Node, out []*token.Token) []*token.Token {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		return m.mapText(gmn, out)

	case *ast.String:
		if len(gmn.Value) == 0 {
			return out
		}
		if gmn.IsCode() || gmn.IsRaw() {
			return append(out, token.NewText(string(gmn.Value)))
		}
		return append(out, token.NewText(unescape(gmn.Value)))

	case *ast.CodeSpan:
		tok := token.New(token.KindCodeInline, "code", token.NestingSelf)
		tok.Content = m.codeSpanContent(gmn)
		tok.Markup = "`"
		return append(out, tok)

	case *ast.Emphasis:
		openKind, closeKind, tag := token.KindEmOpen, token.KindEmClose, "em"
		if gmn.Level == 2 {
			openKind, closeKind, tag = token.KindStrongOpen, token.KindStrongClose, "strong"
		}
		out = append(out, token.New(openKind, tag, token.NestingOpen))
		out = m.mapInlineSiblings(gmn, out)
		return append(out, token.New(closeKind, tag, token.NestingClose))

	case *ast.Link:
		open := token.New(token.KindLinkOpen, "a", token.NestingOpen)
		open.AttrPush("href", safeLink(gmn.Destination))
		if len(gmn.Title) > 0 {
			open.AttrPush("title", unescape(gmn.Title))
		}
		out = append(out, open)
		out = m.mapInlineSiblings(gmn, out)
		return append(out, token.New(token.KindLinkClose, "a", token.NestingClose))

	case *ast.Image:
		return append(out, m.mapImage(gmn))

	case *MediaNode:
		return append(out, gmn.Token)

	case *attributesNode:
		return out

	case *ast.AutoLink:
		return append(out, m.mapAutoLink(gmn)...)

	case *ast.RawHTML:
		tok := token.New(token.KindHTMLInline, "", token.NestingSelf)
		var buf bytes.Buffer
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			buf.Write(seg.Value(m.content))
		}
		tok.Content = buf.String()
		return append(out, tok)

	case *east.Strikethrough:
		out = append(out, token.New(token.KindStrikeOpen, "s", token.NestingOpen))
		out = m.mapInlineSiblings(gmn, out)
		return append(out, token.New(token.KindStrikeClose, "s", token.NestingClose))

	case *east.TaskCheckBox:
		tok := token.New(token.KindHTMLInline, "", token.NestingSelf)
		if gmn.IsChecked {
			tok.Content = `<input checked="" disabled="" type="checkbox"> `
		} else {
			tok.Content = `<input disabled="" type="checkbox"> `
		}
		return append(out, tok)

	default:
		return m.mapInlineSiblings(gmNode, out)
	}
}

func (m *mapper) mapInlineSiblings(gmParent ast.Node, out []*token.Token) []*token.Token {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		out = m.mapInline(child, out)
	}
	return out
}

// mapText emits a text token followed by a break token when the goldmark
// text ends a line.
func (m *mapper) mapText(textNode *ast.Text, out []*token.Token) []*token.Token {
	value := textNode.Segment.Value(m.content)
	if textNode.SoftLineBreak() || textNode.HardLineBreak() {
		value = bytes.TrimRight(value, " \t")
	}
	if len(value) > 0 {
		content := string(value)
		if !textNode.IsRaw() {
			content = unescape(value)
		}
		out = append(out, token.NewText(content))
	}

	switch {
	case textNode.HardLineBreak():
		out = append(out, token.New(token.KindHardbreak, "br", token.NestingSelf))
	case textNode.SoftLineBreak():
		out = append(out, token.New(token.KindSoftbreak, "br", token.NestingSelf))
	}
	return out
}

// mapImage converts a goldmark Image to an image token. Attributes from an
// attribute block follow src, alt and title.
func (m *mapper) mapImage(img *ast.Image) *token.Token {
	tok := token.New(token.KindImage, "img", token.NestingSelf)
	tok.AttrPush("src", safeLink(img.Destination))
	tok.AttrPush("alt", "")
	if len(img.Title) > 0 {
		tok.AttrPush("title", unescape(img.Title))
	}
	for _, attr := range img.Attributes() {
		tok.AttrPush(string(attr.Name), attributeValue(attr.Value))
	}

	tok.Children = m.mapInlineChildren(img)
	tok.Content = plainText(tok.Children)
	return tok
}

// mapAutoLink converts an autolink or a linkified URL into a link pair.
func (m *mapper) mapAutoLink(al *ast.AutoLink) []*token.Token {
	url := string(al.URL(m.content))
	label := string(al.Label(m.content))

	href := url
	switch {
	case al.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:"):
		href = "mailto:" + url
	case al.AutoLinkType == ast.AutoLinkURL && strings.HasPrefix(strings.ToLower(url), "www."):
		href = "http://" + url
	}

	open := token.New(token.KindLinkOpen, "a", token.NestingOpen)
	open.AttrPush("href", safeLink([]byte(href)))
	open.Markup = "autolink"

	closing := token.New(token.KindLinkClose, "a", token.NestingClose)
	closing.Markup = "autolink"

	return []*token.Token{open, token.NewText(label), closing}
}

// codeSpanContent joins a code span's text, turning line endings into spaces.
func (m *mapper) codeSpanContent(codeSpan *ast.CodeSpan) string {
	var buf bytes.Buffer
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			value := c.Segment.Value(m.content)
			if bytes.HasSuffix(value, []byte("\n")) {
				buf.Write(value[:len(value)-1])
				buf.WriteByte(' ')
				continue
			}
			buf.Write(value)
		case *ast.String:
			buf.Write(c.Value)
		}
	}
	return buf.String()
}

// safeLink normalizes a destination and blanks it when it is dangerous.
func safeLink(dest []byte) string {
	href := normalizeLink(string(dest))
	if !validateLink(href) {
		return ""
	}
	return href
}

// plainText returns the text content of inline tokens, the way an image's
// alt text is derived.
func plainText(tokens []*token.Token) string {
	var buf strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case token.KindText, token.KindCodeInline:
			buf.WriteString(tok.Content)
		case token.KindImage, token.KindVideo, token.KindAudio:
			buf.WriteString(plainText(tok.Children))
		case token.KindSoftbreak, token.KindHardbreak:
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}
