package goldmark

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const attributeParserPriority = 500

// KindAttributes marks where an attribute block was consumed. The mapper
// drops these nodes.
//
//nolint:gochecknoglobals // goldmark node kinds are registered once
var KindAttributes = ast.NewNodeKind("Attributes")

type attributesNode struct {
	ast.BaseInline
}

func (n *attributesNode) Kind() ast.NodeKind {
	return KindAttributes
}

func (n *attributesNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// attributeParser attaches "{.class #id key=value}" to the image or media
// element immediately before it. Anything else is left as text.
type attributeParser struct{}

func (attributeParser) Trigger() []byte {
	return []byte{'{'}
}

func (attributeParser) Parse(parent ast.Node, block text.Reader, _ parser.Context) ast.Node {
	prev := parent.LastChild()
	if prev == nil || (prev.Kind() != ast.KindImage && prev.Kind() != KindMedia) {
		return nil
	}

	attrs, ok := parser.ParseAttributes(block)
	if !ok {
		return nil
	}

	for _, attr := range attrs {
		name := string(attr.Name)
		value := attributeValue(attr.Value)

		switch target := prev.(type) {
		case *MediaNode:
			if name == "class" {
				target.Token.AttrJoin(name, value)
			} else {
				target.Token.AttrSet(name, value)
			}
		default:
			if existing, found := target.Attribute(attr.Name); found && name == "class" {
				value = attributeValue(existing) + " " + value
			}
			target.SetAttribute(attr.Name, []byte(value))
		}
	}

	return &attributesNode{}
}

func attributeValue(value any) string {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
