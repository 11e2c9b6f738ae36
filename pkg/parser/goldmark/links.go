package goldmark

import (
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/figmark/pkg/media"
)

// maxDestinationNesting bounds unescaped parentheses in a bare destination.
const maxDestinationNesting = 32

// parseLinkLabel returns the index of the ']' that closes the label opened by
// the '[' at start, or -1. Backslash escapes, code spans and autolinks are
// skipped so that brackets inside them do not count.
func parseLinkLabel(src []byte, start, max int) int {
	level := 1
	pos := start + 1

	for pos < max {
		switch src[pos] {
		case '\\':
			pos += 2
			continue
		case '`':
			pos = skipCodeSpan(src, pos, max)
			continue
		case '<':
			if end := skipAutolink(src, pos, max); end > pos {
				pos = end
				continue
			}
		case '[':
			level++
		case ']':
			level--
			if level == 0 {
				return pos
			}
		}
		pos++
	}

	return -1
}

// skipCodeSpan returns the position after the code span starting at pos, or
// after the opening backtick run when the span is never closed.
func skipCodeSpan(src []byte, pos, max int) int {
	start := pos
	for pos < max && src[pos] == '`' {
		pos++
	}
	ticks := pos - start

	for pos < max {
		if src[pos] != '`' {
			pos++
			continue
		}
		run := pos
		for pos < max && src[pos] == '`' {
			pos++
		}
		if pos-run == ticks {
			return pos
		}
	}

	return start + ticks
}

// skipAutolink returns the position after an autolink such as
// <https://example.com> or <me@example.com>, or pos when there is none.
func skipAutolink(src []byte, pos, max int) int {
	hasScheme := false
	for i := pos + 1; i < max; i++ {
		switch c := src[i]; c {
		case '>':
			if hasScheme {
				return i + 1
			}
			return pos
		case ' ', '\t', '\n', '<':
			return pos
		case ':', '@':
			hasScheme = i > pos+1
		}
	}
	return pos
}

// parseLinkDestination parses "<...>" or a bare destination with balanced
// parentheses. The returned string is raw; NormalizeLink resolves escapes.
func parseLinkDestination(src []byte, pos, max int) media.LinkResult {
	var res media.LinkResult
	start := pos

	if pos < max && src[pos] == '<' {
		pos++
		for pos < max {
			switch src[pos] {
			case '\n', '<':
				return res
			case '>':
				res.OK = true
				res.Str = string(src[start+1 : pos])
				res.Pos = pos + 1
				return res
			case '\\':
				if pos+1 < max {
					pos += 2
					continue
				}
			}
			pos++
		}
		return res
	}

	level := 0
	for pos < max {
		c := src[pos]
		if c == ' ' || c < 0x20 || c == 0x7f {
			break
		}
		if c == '\\' && pos+1 < max {
			if src[pos+1] == ' ' {
				break
			}
			pos += 2
			continue
		}
		if c == '(' {
			level++
			if level > maxDestinationNesting {
				return res
			}
		}
		if c == ')' {
			if level == 0 {
				break
			}
			level--
		}
		pos++
	}

	if start == pos || level != 0 {
		return res
	}

	res.OK = true
	res.Str = string(src[start:pos])
	res.Pos = pos
	return res
}

// parseLinkTitle parses a "...", '...' or (...) title. The result has
// escapes and entities resolved.
func parseLinkTitle(src []byte, pos, max int) media.LinkResult {
	var res media.LinkResult
	if pos >= max {
		return res
	}

	marker := src[pos]
	switch marker {
	case '"', '\'':
	case '(':
		marker = ')'
	default:
		return res
	}

	start := pos
	pos++
	for pos < max {
		c := src[pos]
		switch {
		case c == marker:
			res.OK = true
			res.Str = unescape(src[start+1 : pos])
			res.Pos = pos + 1
			return res
		case c == '(' && marker == ')':
			return res
		case c == '\\' && pos+1 < max:
			pos++
		}
		pos++
	}

	return res
}

// normalizeLink resolves escapes and entity references and percent-encodes
// what is left.
func normalizeLink(raw string) string {
	return string(util.URLEscape([]byte(raw), true))
}

// validateLink rejects javascript:, vbscript:, file: and non-image data: URLs.
func validateLink(url string) bool {
	return !html.IsDangerousURL([]byte(url))
}

// normalizeReference folds a reference label the way goldmark keys its
// reference table.
func normalizeReference(label string) string {
	return util.ToLinkReference([]byte(label))
}

// unescape resolves backslash escapes and entity references in text.
func unescape(value []byte) string {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return string(value)
}
