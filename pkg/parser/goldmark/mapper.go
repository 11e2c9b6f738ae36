package goldmark

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/figmark/pkg/token"
)

// mapper flattens a goldmark AST into a token stream.
type mapper struct {
	content []byte
	tokens  []*token.Token
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument flattens a goldmark document into block tokens.
func (m *mapper) mapDocument(gmDoc ast.Node) []*token.Token {
	m.tokens = nil
	m.mapChildren(gmDoc)
	return m.tokens
}

func (m *mapper) push(kind token.Kind, tag string, nesting int) *token.Token {
	tok := token.NewBlock(kind, tag, nesting)
	m.tokens = append(m.tokens, tok)
	return tok
}

// mapChildren maps all block children of a goldmark node.
func (m *mapper) mapChildren(gmParent ast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapBlock(child)
	}
}

// mapBlock converts a single goldmark block node.
func (m *mapper) mapBlock(gmNode ast.Node) {
	switch gmn := gmNode.(type) {
	case *ast.Document:
		m.mapChildren(gmNode)

	case *ast.Paragraph:
		m.mapParagraph(gmn, false)

	case *ast.TextBlock:
		// Tight list items hold text blocks; they render without <p>.
		m.mapParagraph(gmn, true)

	case *ast.Heading:
		m.mapHeading(gmn)

	case *ast.Blockquote:
		m.push(token.KindBlockquoteOpen, "blockquote", token.NestingOpen).Markup = ">"
		m.mapChildren(gmn)
		m.push(token.KindBlockquoteClose, "blockquote", token.NestingClose).Markup = ">"

	case *ast.List:
		m.mapList(gmn)

	case *ast.ListItem:
		open := m.push(token.KindListItemOpen, "li", token.NestingOpen)
		if list, ok := gmn.Parent().(*ast.List); ok {
			open.Markup = string(list.Marker)
		}
		m.mapChildren(gmn)
		m.push(token.KindListItemClose, "li", token.NestingClose)

	case *ast.FencedCodeBlock:
		m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		m.push(token.KindCodeBlock, "code", token.NestingSelf).Content = m.linesContent(gmn)

	case *ast.ThematicBreak:
		m.push(token.KindHr, "hr", token.NestingSelf)

	case *ast.HTMLBlock:
		content := m.linesContent(gmn)
		if gmn.HasClosure() {
			content += string(gmn.ClosureLine.Value(m.content))
		}
		m.push(token.KindHTMLBlock, "", token.NestingSelf).Content = content

	case *east.Table:
		m.mapTable(gmn)

	default:
		// Unknown blocks contribute their children.
		m.mapChildren(gmNode)
	}
}

// mapParagraph emits paragraph_open, inline and paragraph_close.
func (m *mapper) mapParagraph(gmNode ast.Node, hidden bool) {
	open := m.push(token.KindParagraphOpen, "p", token.NestingOpen)
	open.Hidden = hidden
	m.pushInline(gmNode)
	closing := m.push(token.KindParagraphClose, "p", token.NestingClose)
	closing.Hidden = hidden
}

// pushInline emits the inline token holding a block's inline content.
func (m *mapper) pushInline(gmNode ast.Node) {
	inline := token.New(token.KindInline, "", token.NestingSelf)
	inline.Content = strings.TrimSpace(m.linesContent(gmNode))
	inline.Children = m.mapInlineChildren(gmNode)
	m.tokens = append(m.tokens, inline)
}

// mapHeading converts a goldmark Heading.
func (m *mapper) mapHeading(h *ast.Heading) {
	tag := "h" + strconv.Itoa(h.Level)
	markup := strings.Repeat("#", h.Level)

	m.push(token.KindHeadingOpen, tag, token.NestingOpen).Markup = markup
	m.pushInline(h)
	m.push(token.KindHeadingClose, tag, token.NestingClose).Markup = markup
}

// mapList converts a goldmark List.
func (m *mapper) mapList(list *ast.List) {
	marker := string(list.Marker)

	if list.IsOrdered() {
		open := m.push(token.KindOrderedListOpen, "ol", token.NestingOpen)
		open.Markup = marker
		if list.Start != 1 {
			open.AttrPush("start", strconv.Itoa(list.Start))
		}
		m.mapChildren(list)
		m.push(token.KindOrderedListClose, "ol", token.NestingClose).Markup = marker
		return
	}

	m.push(token.KindBulletListOpen, "ul", token.NestingOpen).Markup = marker
	m.mapChildren(list)
	m.push(token.KindBulletListClose, "ul", token.NestingClose).Markup = marker
}

// mapFencedCodeBlock converts a goldmark FencedCodeBlock to a fence token.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) {
	tok := m.push(token.KindFence, "code", token.NestingSelf)

	if codeBlock.Info != nil {
		tok.Info = unescape(codeBlock.Info.Value(m.content))
	}
	tok.Content = m.linesContent(codeBlock)

	fenceChar, fenceLength := m.detectFenceFromPosition(codeBlock)
	tok.Markup = strings.Repeat(string(fenceChar), fenceLength)
}

// detectFenceFromPosition detects the fence style by examining the raw content
// on the line before the block's first content line.
func (m *mapper) detectFenceFromPosition(codeBlock *ast.FencedCodeBlock) (byte, int) {
	lines := codeBlock.Lines()
	if lines.Len() == 0 {
		return m.fenceFromInfo(codeBlock)
	}

	lineStart := lines.At(0).Start
	for lineStart > 0 && m.content[lineStart-1] != '\n' {
		lineStart--
	}
	if lineStart == 0 {
		return '`', 3
	}

	prevLineEnd := lineStart - 1
	prevLineStart := prevLineEnd
	for prevLineStart > 0 && m.content[prevLineStart-1] != '\n' {
		prevLineStart--
	}
	return m.extractFenceFromLine(prevLineStart, prevLineEnd)
}

// fenceFromInfo finds the fence of an empty block from its info string,
// which sits on the opening line.
func (m *mapper) fenceFromInfo(codeBlock *ast.FencedCodeBlock) (byte, int) {
	if codeBlock.Info == nil {
		return '`', 3
	}
	start := codeBlock.Info.Segment.Start
	for start > 0 && m.content[start-1] != '\n' {
		start--
	}
	return m.extractFenceFromLine(start, codeBlock.Info.Segment.Start)
}

// extractFenceFromLine extracts fence character and length from a line.
func (m *mapper) extractFenceFromLine(start, end int) (byte, int) {
	if start >= end || start >= len(m.content) {
		return '`', 3
	}

	pos := start
	for pos < end && pos < len(m.content) && (m.content[pos] == ' ' || m.content[pos] == '\t') {
		pos++
	}
	if pos >= end || pos >= len(m.content) {
		return '`', 3
	}

	fenceChar := m.content[pos]
	if fenceChar != '`' && fenceChar != '~' {
		return '`', 3
	}

	fenceLength := 0
	for pos < end && pos < len(m.content) && m.content[pos] == fenceChar {
		fenceLength++
		pos++
	}

	return fenceChar, max(fenceLength, 3)
}

// mapTable converts a GFM table into table, thead, tbody, tr and cell tokens.
func (m *mapper) mapTable(table *east.Table) {
	m.push(token.KindTableOpen, "table", token.NestingOpen)

	inBody := false
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			m.push(token.KindTheadOpen, "thead", token.NestingOpen)
			m.mapTableRow(row, token.KindThOpen, token.KindThClose, "th")
			m.push(token.KindTheadClose, "thead", token.NestingClose)
		case *east.TableRow:
			if !inBody {
				m.push(token.KindTbodyOpen, "tbody", token.NestingOpen)
				inBody = true
			}
			m.mapTableRow(row, token.KindTdOpen, token.KindTdClose, "td")
		}
	}

	if inBody {
		m.push(token.KindTbodyClose, "tbody", token.NestingClose)
	}
	m.push(token.KindTableClose, "table", token.NestingClose)
}

func (m *mapper) mapTableRow(row ast.Node, openKind, closeKind token.Kind, tag string) {
	m.push(token.KindTrOpen, "tr", token.NestingOpen)
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		open := m.push(openKind, tag, token.NestingOpen)
		if tc, ok := cell.(*east.TableCell); ok && tc.Alignment != east.AlignNone {
			open.AttrPush("style", "text-align:"+tc.Alignment.String())
		}

		inline := token.New(token.KindInline, "", token.NestingSelf)
		inline.Children = m.mapInlineChildren(cell)
		inline.Content = plainText(inline.Children)
		m.tokens = append(m.tokens, inline)

		m.push(closeKind, tag, token.NestingClose)
	}
	m.push(token.KindTrClose, "tr", token.NestingClose)
}

// linesContent joins the raw source lines of a block node.
func (m *mapper) linesContent(gmNode ast.Node) string {
	lines := gmNode.Lines()
	var buf bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.content))
	}
	return buf.String()
}
