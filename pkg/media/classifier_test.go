package media_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/figmark/pkg/media"
	"github.com/yaklabco/figmark/pkg/token"
)

// stubHost is a deliberately small Host: labels nest on brackets,
// destinations end at whitespace or ')', titles are double-quoted.
type stubHost struct{}

func (stubHost) ParseLinkLabel(src []byte, start, max int) int {
	level := 1
	for pos := start + 1; pos < max; pos++ {
		switch src[pos] {
		case '[':
			level++
		case ']':
			level--
			if level == 0 {
				return pos
			}
		}
	}
	return -1
}

func (stubHost) ParseLinkDestination(src []byte, pos, max int) media.LinkResult {
	start := pos
	for pos < max && src[pos] != ' ' && src[pos] != ')' && src[pos] != '\n' {
		if src[pos] == '(' {
			return media.LinkResult{}
		}
		pos++
	}
	return media.LinkResult{OK: true, Str: string(src[start:pos]), Pos: pos}
}

func (stubHost) ParseLinkTitle(src []byte, pos, max int) media.LinkResult {
	if pos >= max || src[pos] != '"' {
		return media.LinkResult{}
	}
	end := strings.IndexByte(string(src[pos+1:max]), '"')
	if end < 0 {
		return media.LinkResult{}
	}
	return media.LinkResult{OK: true, Str: string(src[pos+1 : pos+1+end]), Pos: pos + end + 2}
}

func (stubHost) NormalizeLink(raw string) string { return raw }

func (stubHost) ValidateLink(url string) bool {
	return !strings.HasPrefix(strings.ToLower(url), "javascript:")
}

func (stubHost) NormalizeReference(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func (stubHost) ParseInline(content string, _ *token.Env) []*token.Token {
	if content == "" {
		return nil
	}
	return []*token.Token{token.NewText(content)}
}

func newEnv() *token.Env {
	env := token.NewEnv("en")
	env.References = token.ReferenceMap{
		"clip":  {Href: "clips/intro.webm", Title: "Intro"},
		"photo": {Href: "photo.jpg"},
	}
	return env
}

func TestClassifier_InlineForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		wantKind  token.Kind
		wantTag   string
		wantAttrs []token.Attr
		wantPos   int
		wantChild string
	}{
		{
			name:      "plain image",
			src:       "![caption](fig.png)",
			wantKind:  token.KindImage,
			wantTag:   "img",
			wantAttrs: []token.Attr{{Name: "src", Value: "fig.png"}, {Name: "alt", Value: ""}},
			wantPos:   19,
			wantChild: "caption",
		},
		{
			name:      "video with title",
			src:       `![clip](fig.mp4 "Title")`,
			wantKind:  token.KindVideo,
			wantTag:   "video",
			wantAttrs: []token.Attr{{Name: "src", Value: "fig.mp4"}, {Name: "title", Value: "Title"}},
			wantPos:   24,
			wantChild: "clip",
		},
		{
			name:      "audio with padding",
			src:       "![song](  song.mp3  ) tail",
			wantKind:  token.KindAudio,
			wantTag:   "audio",
			wantAttrs: []token.Attr{{Name: "src", Value: "song.mp3"}},
			wantPos:   21,
			wantChild: "song",
		},
		{
			name:      "empty label",
			src:       "![](fig.png)",
			wantKind:  token.KindImage,
			wantTag:   "img",
			wantAttrs: []token.Attr{{Name: "src", Value: "fig.png"}, {Name: "alt", Value: ""}},
			wantPos:   12,
		},
		{
			name:      "rejected link is not consumed",
			src:       "![x](javascript:void)",
			wantKind:  token.KindImage,
			wantTag:   "img",
			wantAttrs: []token.Attr{{Name: "src", Value: ""}, {Name: "alt", Value: ""}},
			wantPos:   -1,
		},
	}

	classifier := media.NewClassifier(stubHost{})

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			st := media.NewState([]byte(testCase.src), newEnv())
			ok := classifier.Tokenize(st, false)

			if testCase.wantPos < 0 {
				// The rejected destination stays in place, so ')' is never reached.
				assert.False(t, ok)
				assert.Equal(t, 0, st.Pos)
				assert.Empty(t, st.Tokens)
				return
			}

			require.True(t, ok)
			require.Len(t, st.Tokens, 1)

			tok := st.Tokens[0]
			assert.Equal(t, testCase.wantKind, tok.Kind)
			assert.Equal(t, testCase.wantTag, tok.Tag)
			assert.Equal(t, testCase.wantAttrs, tok.Attrs)
			assert.Equal(t, testCase.wantPos, st.Pos)

			if testCase.wantChild == "" {
				assert.Empty(t, tok.Children)
			} else {
				require.Len(t, tok.Children, 1)
				assert.Equal(t, testCase.wantChild, tok.Children[0].Content)
				assert.Equal(t, testCase.wantChild, tok.Content)
			}
		})
	}
}

func TestClassifier_ReferenceForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantKind token.Kind
		wantSrc  string
		wantPos  int
	}{
		{"full reference", "![Intro][clip]", token.KindVideo, "clips/intro.webm", 14},
		{"collapsed reference", "![Photo][]", token.KindImage, "photo.jpg", 10},
		{"shortcut reference", "![photo] rest", token.KindImage, "photo.jpg", 8},
	}

	classifier := media.NewClassifier(stubHost{})

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			st := media.NewState([]byte(testCase.src), newEnv())
			require.True(t, classifier.Tokenize(st, false))
			require.Len(t, st.Tokens, 1)

			tok := st.Tokens[0]
			assert.Equal(t, testCase.wantKind, tok.Kind)
			src, _ := tok.AttrGet("src")
			assert.Equal(t, testCase.wantSrc, src)
			assert.Equal(t, testCase.wantPos, st.Pos)
		})
	}
}

func TestClassifier_ReferenceTitle(t *testing.T) {
	t.Parallel()

	st := media.NewState([]byte("![x][clip]"), newEnv())
	require.True(t, media.NewClassifier(stubHost{}).Tokenize(st, false))

	title, ok := st.Tokens[0].AttrGet("title")
	require.True(t, ok)
	assert.Equal(t, "Intro", title)
}

func TestClassifier_NoMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		env  *token.Env
	}{
		{"not an image", "[link](x)", newEnv()},
		{"bang only", "!", newEnv()},
		{"unclosed label", "![caption(fig.png)", newEnv()},
		{"missing closing paren", "![a](fig.png", newEnv()},
		{"open paren at end", "![a](   ", newEnv()},
		{"unknown reference", "![a][nope]", newEnv()},
		{"reference without table", "![photo]", token.NewEnv("en")},
		{"nil env", "![photo]", nil},
		{"garbage after title", `![a](b "t" x)`, newEnv()},
	}

	classifier := media.NewClassifier(stubHost{})

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			st := media.NewState([]byte(testCase.src), testCase.env)
			assert.False(t, classifier.Tokenize(st, false))
			assert.Equal(t, 0, st.Pos)
			assert.Empty(t, st.Tokens)
		})
	}
}

func TestClassifier_Silent(t *testing.T) {
	t.Parallel()

	st := media.NewState([]byte("![a](b.mp3) after"), newEnv())
	require.True(t, media.NewClassifier(stubHost{}).Tokenize(st, true))

	assert.Empty(t, st.Tokens)
	assert.Equal(t, 11, st.Pos)
}

func TestClassifier_OffsetStart(t *testing.T) {
	t.Parallel()

	st := media.NewState([]byte("xx ![a](b.png)"), newEnv())
	st.Pos = 3
	require.True(t, media.NewClassifier(stubHost{}).Tokenize(st, false))
	assert.Equal(t, 14, st.Pos)
}
