package media

import (
	"github.com/yaklabco/figmark/pkg/token"
)

// LinkResult is the outcome of parsing a link destination or title.
type LinkResult struct {
	OK  bool
	Str string
	Pos int
}

// Host is the parser surface the classifier consumes. The goldmark adapter
// in pkg/parser/goldmark implements it.
type Host interface {
	// ParseLinkLabel returns the index of the ']' closing the label whose
	// '[' is at start, or -1.
	ParseLinkLabel(src []byte, start, max int) int

	// ParseLinkDestination parses a destination beginning at pos.
	ParseLinkDestination(src []byte, pos, max int) LinkResult

	// ParseLinkTitle parses a quoted or parenthesized title beginning at pos.
	ParseLinkTitle(src []byte, pos, max int) LinkResult

	// NormalizeLink resolves escapes and entities and percent-encodes raw.
	NormalizeLink(raw string) string

	// ValidateLink reports whether a normalized URL is safe to emit.
	ValidateLink(url string) bool

	// NormalizeReference folds a reference label into its lookup key.
	NormalizeReference(label string) string

	// ParseInline parses content as inline Markdown.
	ParseInline(content string, env *token.Env) []*token.Token
}

// State is the inline parse position handed to the classifier.
type State struct {
	Src    []byte
	Pos    int
	PosMax int
	Env    *token.Env

	// Tokens receives the tokens pushed by a successful, non-silent match.
	Tokens []*token.Token
}

// NewState returns a state positioned at the start of src.
func NewState(src []byte, env *token.Env) *State {
	return &State{
		Src:    src,
		PosMax: len(src),
		Env:    env,
	}
}

// Push appends a new token to the state's output.
func (s *State) Push(kind token.Kind, tag string, nesting int) *token.Token {
	tok := token.New(kind, tag, nesting)
	s.Tokens = append(s.Tokens, tok)
	return tok
}

// Classifier recognizes image syntax and emits image, audio or video tokens
// depending on the destination's extension.
type Classifier struct {
	host Host
}

// NewClassifier returns a classifier backed by host.
func NewClassifier(host Host) *Classifier {
	return &Classifier{host: host}
}

// Tokenize tries to recognize "![label](dest "title")" or a reference form
// ("![label][ref]", "![label][]", "![label]") at st.Pos.
//
// It returns false and leaves st.Pos untouched when there is no match. In
// silent mode it only validates; otherwise it pushes one token onto st.Tokens.
// On success st.Pos is moved past the construct.
func (c *Classifier) Tokenize(st *State, silent bool) bool {
	src, max := st.Src, st.PosMax
	oldPos := st.Pos

	if oldPos+1 >= max || src[oldPos] != '!' || src[oldPos+1] != '[' {
		return false
	}

	labelStart := oldPos + 2
	labelEnd := c.host.ParseLinkLabel(src, oldPos+1, max)
	if labelEnd < 0 {
		return false
	}

	var href, title string
	pos := labelEnd + 1

	if pos < max && src[pos] == '(' {
		// Inline form: (  <href>  "title"  )
		pos = skipSpace(src, pos+1, max)
		if pos >= max {
			return false
		}

		res := c.host.ParseLinkDestination(src, pos, max)
		if res.OK {
			href = c.host.NormalizeLink(res.Str)
			if c.host.ValidateLink(href) {
				pos = res.Pos
			} else {
				href = ""
			}
		}

		start := pos
		pos = skipSpace(src, pos, max)

		// A title must be separated from the destination by whitespace.
		res = c.host.ParseLinkTitle(src, pos, max)
		if pos < max && start != pos && res.OK {
			title = res.Str
			pos = skipSpace(src, res.Pos, max)
		}

		if pos >= max || src[pos] != ')' {
			st.Pos = oldPos
			return false
		}
		pos++
	} else {
		// Reference forms need a reference table.
		if !st.Env.HasReferences() {
			return false
		}

		var label string
		if pos < max && src[pos] == '[' {
			start := pos + 1
			end := c.host.ParseLinkLabel(src, pos, max)
			if end >= 0 {
				label = string(src[start:end])
				pos = end + 1
			} else {
				pos = labelEnd + 1
			}
		}

		// Collapsed ("[]") and shortcut forms use the image label itself.
		if label == "" {
			label = string(src[labelStart:labelEnd])
		}

		ref, ok := st.Env.Lookup(c.host.NormalizeReference(label))
		if !ok {
			st.Pos = oldPos
			return false
		}
		href = ref.Href
		title = ref.Title
	}

	if !silent {
		content := string(src[labelStart:labelEnd])
		kind := Guess(href)

		tok := st.Push(kind.Kind(), kind.Tag(), token.NestingSelf)
		tok.AttrPush("src", href)
		if kind == TypeImage {
			// The alt text is rendered from the children.
			tok.AttrPush("alt", "")
		}
		if title != "" {
			tok.AttrPush("title", title)
		}
		tok.Children = c.host.ParseInline(content, st.Env)
		tok.Content = content
	}

	st.Pos = pos
	return true
}

// skipSpace advances over spaces, tabs and line feeds.
func skipSpace(src []byte, pos, max int) int {
	for ; pos < max; pos++ {
		switch src[pos] {
		case ' ', '\t', '\n':
		default:
			return pos
		}
	}
	return pos
}
