package html_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/figmark/pkg/render/html"
	"github.com/yaklabco/figmark/pkg/token"
)

func inline(children ...*token.Token) *token.Token {
	tok := token.New(token.KindInline, "", token.NestingSelf)
	tok.Children = children
	return tok
}

func block(kind token.Kind, tag string, nesting int) *token.Token {
	return token.NewBlock(kind, tag, nesting)
}

func TestRenderer_Blocks(t *testing.T) {
	t.Parallel()

	img := token.New(token.KindImage, "img", token.NestingSelf)
	img.AttrPush("src", "fig.png")
	img.AttrPush("alt", "")
	img.Children = []*token.Token{token.NewText("a "), token.New(token.KindEmOpen, "em", token.NestingOpen),
		token.NewText("b"), token.New(token.KindEmClose, "em", token.NestingClose)}

	tests := []struct {
		name   string
		tokens []*token.Token
		want   string
	}{
		{
			name: "paragraph",
			tokens: []*token.Token{
				block(token.KindParagraphOpen, "p", token.NestingOpen),
				inline(token.NewText("x < y")),
				block(token.KindParagraphClose, "p", token.NestingClose),
			},
			want: "<p>x &lt; y</p>\n",
		},
		{
			name: "figure with image alt from children",
			tokens: []*token.Token{
				block(token.KindFigureOpen, "figure", token.NestingOpen),
				inline(img),
				block(token.KindFigureClose, "figure", token.NestingClose),
			},
			want: "<figure><img src=\"fig.png\" alt=\"a b\"></figure>\n",
		},
		{
			name: "empty container closes on the same line",
			tokens: []*token.Token{
				block(token.KindBlockquoteOpen, "blockquote", token.NestingOpen),
				block(token.KindBlockquoteClose, "blockquote", token.NestingClose),
			},
			want: "<blockquote></blockquote>\n",
		},
		{
			name: "hidden paragraph in list item",
			tokens: func() []*token.Token {
				open := block(token.KindParagraphOpen, "p", token.NestingOpen)
				open.Hidden = true
				closing := block(token.KindParagraphClose, "p", token.NestingClose)
				closing.Hidden = true
				return []*token.Token{
					block(token.KindBulletListOpen, "ul", token.NestingOpen),
					block(token.KindListItemOpen, "li", token.NestingOpen),
					open,
					inline(token.NewText("item")),
					closing,
					block(token.KindBulletListOpen, "ul", token.NestingOpen),
					block(token.KindBulletListClose, "ul", token.NestingClose),
					block(token.KindListItemClose, "li", token.NestingClose),
					block(token.KindBulletListClose, "ul", token.NestingClose),
				}
			}(),
			want: "<ul>\n<li>item\n<ul></ul>\n</li>\n</ul>\n",
		},
		{
			name: "attributes are escaped",
			tokens: func() []*token.Token {
				open := block(token.KindParagraphOpen, "p", token.NestingOpen)
				open.AttrPush("title", `"q" & <t>`)
				return []*token.Token{open, inline(), block(token.KindParagraphClose, "p", token.NestingClose)}
			}(),
			want: "<p title=\"&quot;q&quot; &amp; &lt;t&gt;\"></p>\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, html.New().Render(testCase.tokens, nil))
		})
	}
}

func TestRenderer_Fence(t *testing.T) {
	t.Parallel()

	fence := func(info, content string) []*token.Token {
		tok := block(token.KindFence, "code", token.NestingSelf)
		tok.Info = info
		tok.Content = content
		return []*token.Token{tok}
	}
	detector := func(code []byte) string {
		if string(code) == "package main\n" {
			return "go"
		}
		return ""
	}

	tests := []struct {
		name   string
		opts   []html.Option
		tokens []*token.Token
		want   string
	}{
		{"info word", nil, fence("go linenos", "x\n"), "<pre><code class=\"language-go\">x\n</code></pre>\n"},
		{"no info", nil, fence("", "<b>\n"), "<pre><code>&lt;b&gt;\n</code></pre>\n"},
		{"prefix", []html.Option{html.WithLangPrefix("lang-")}, fence("rust", ""), "<pre><code class=\"lang-rust\"></code></pre>\n"},
		{"detected", []html.Option{html.WithLanguageDetector(detector)}, fence("", "package main\n"),
			"<pre><code class=\"language-go\">package main\n</code></pre>\n"},
		{"undetected", []html.Option{html.WithLanguageDetector(detector)}, fence("", "hi\n"),
			"<pre><code>hi\n</code></pre>\n"},
		{"info wins over detector", []html.Option{html.WithLanguageDetector(detector)}, fence("text", "package main\n"),
			"<pre><code class=\"language-text\">package main\n</code></pre>\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tokens := testCase.tokens
			assert.Equal(t, testCase.want, html.New(testCase.opts...).Render(tokens, nil))
			assert.Empty(t, tokens[0].Attrs, "fence attributes must not be modified")
		})
	}
}

func TestRenderer_Inline(t *testing.T) {
	t.Parallel()

	code := token.New(token.KindCodeInline, "code", token.NestingSelf)
	code.Content = "a<b"
	raw := token.New(token.KindHTMLInline, "", token.NestingSelf)
	raw.Content = "<kbd>"
	link := token.New(token.KindLinkOpen, "a", token.NestingOpen)
	link.AttrPush("href", "/x?a=1&b=2")

	children := []*token.Token{
		code,
		token.New(token.KindSoftbreak, "br", token.NestingSelf),
		raw,
		token.New(token.KindHardbreak, "br", token.NestingSelf),
		link,
		token.NewText("t"),
		token.New(token.KindLinkClose, "a", token.NestingClose),
	}

	assert.Equal(t,
		"<code>a&lt;b</code>\n<kbd><br>\n<a href=\"/x?a=1&amp;b=2\">t</a>",
		html.New().RenderInline(children, nil))
	assert.Equal(t,
		"<code>a&lt;b</code>\n<kbd><br />\n<a href=\"/x?a=1&amp;b=2\">t</a>",
		html.New(html.WithXHTML()).RenderInline(children, nil))
}

func TestRenderer_SetRule(t *testing.T) {
	t.Parallel()

	r := html.New()
	video := token.New(token.KindVideo, "video", token.NestingSelf)
	video.AttrPush("src", "a.mp4")

	// Without a rule, media tokens render as a plain tag.
	assert.Equal(t, `<video src="a.mp4">`, r.RenderInline([]*token.Token{video}, nil))

	r.SetRule(token.KindVideo, func(tokens []*token.Token, idx int, env *token.Env, _ *html.Renderer) string {
		return "[video " + tokens[idx].Attrs[0].Value + " " + env.Language + "]"
	})
	_, ok := r.Rule(token.KindVideo)
	assert.True(t, ok)
	assert.Equal(t, "[video a.mp4 fr]", r.RenderInline([]*token.Token{video}, token.NewEnv("fr")))

	r.SetRule(token.KindVideo, nil)
	_, ok = r.Rule(token.KindVideo)
	assert.False(t, ok)
	assert.False(t, r.XHTML())
}

func TestRenderInlineAsText(t *testing.T) {
	t.Parallel()

	nested := token.New(token.KindImage, "img", token.NestingSelf)
	nested.Children = []*token.Token{token.NewText("inner")}
	raw := token.New(token.KindHTMLInline, "", token.NestingSelf)
	raw.Content = "<br>"
	code := token.New(token.KindCodeInline, "code", token.NestingSelf)
	code.Content = "dropped"

	got := html.RenderInlineAsText([]*token.Token{
		token.NewText("a"),
		token.New(token.KindStrongOpen, "strong", token.NestingOpen),
		token.NewText("b"),
		token.New(token.KindStrongClose, "strong", token.NestingClose),
		token.New(token.KindSoftbreak, "br", token.NestingSelf),
		nested,
		raw,
		code,
	})

	assert.Equal(t, "ab\ninner<br>", got)
}
