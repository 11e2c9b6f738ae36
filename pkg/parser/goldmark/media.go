package goldmark

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/figmark/pkg/media"
	"github.com/yaklabco/figmark/pkg/token"
)

// mediaParserPriority places the media parser ahead of goldmark's link parser
// (200) for the '!' trigger.
const mediaParserPriority = 199

// KindMedia is the goldmark node kind of a classified image, audio or video.
//
//nolint:gochecknoglobals // goldmark node kinds are registered once
var KindMedia = ast.NewNodeKind("Media")

// MediaNode carries a token produced by the media classifier through the
// goldmark AST.
type MediaNode struct {
	ast.BaseInline

	Token *token.Token
}

// Kind implements ast.Node.
func (n *MediaNode) Kind() ast.NodeKind {
	return KindMedia
}

// Dump implements ast.Node.
func (n *MediaNode) Dump(source []byte, level int) {
	src, _ := n.Token.AttrGet("src")
	ast.DumpHelper(n, source, level, map[string]string{
		"Type": n.Token.Kind.String(),
		"Src":  src,
	}, nil)
}

// mediaParser runs the media classifier on "![".
type mediaParser struct {
	classifier *media.Classifier
}

func (s *mediaParser) Trigger() []byte {
	return []byte{'!'}
}

// Parse replaces goldmark's image recognizer. A refused "![" is emitted as
// text so goldmark's link parser, which also triggers on '!', never builds an
// image from it. The '[' goes with it: a link at the same bracket fails the
// same label and destination checks.
func (s *mediaParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	if len(line) < 2 || line[0] != '!' || line[1] != '[' {
		return nil
	}

	st := media.NewState(remainingLines(block), envFromContext(pc))
	if !s.classifier.Tokenize(st, false) || len(st.Tokens) != 1 {
		block.Advance(2)
		return ast.NewTextSegment(segment.WithStop(segment.Start + 2))
	}

	advanceBytes(block, st.Pos)
	return &MediaNode{Token: st.Tokens[0]}
}

// remainingLines returns the rest of the block from the reader position,
// leaving the reader where it was. A destination or title may continue on
// the following lines of the paragraph.
func remainingLines(block text.Reader) []byte {
	line, _ := block.PeekLine()
	buf := append([]byte(nil), line...)

	savedLine, savedPos := block.Position()
	for {
		block.AdvanceLine()
		next, _ := block.PeekLine()
		if next == nil {
			break
		}
		buf = append(buf, next...)
	}
	block.SetPosition(savedLine, savedPos)

	return buf
}

// advanceBytes moves the reader n bytes forward, crossing lines as needed.
func advanceBytes(block text.Reader, n int) {
	for n > 0 {
		line, _ := block.PeekLine()
		if line == nil {
			return
		}
		if n < len(line) {
			block.Advance(n)
			return
		}
		n -= len(line)
		block.AdvanceLine()
	}
}
