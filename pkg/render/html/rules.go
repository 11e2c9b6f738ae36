package html

import (
	"strings"

	"github.com/yaklabco/figmark/pkg/token"
)

func defaultRules() map[token.Kind]Rule {
	return map[token.Kind]Rule{
		token.KindText:       renderText,
		token.KindCodeInline: renderCodeInline,
		token.KindCodeBlock:  renderCodeBlock,
		token.KindFence:      renderFence,
		token.KindImage:      renderImage,
		token.KindHardbreak:  renderHardbreak,
		token.KindSoftbreak:  renderSoftbreak,
		token.KindHTMLBlock:  renderHTML,
		token.KindHTMLInline: renderHTML,
	}
}

func renderText(tokens []*token.Token, idx int, _ *token.Env, _ *Renderer) string {
	return Escape(tokens[idx].Content)
}

func renderCodeInline(tokens []*token.Token, idx int, _ *token.Env, _ *Renderer) string {
	tok := tokens[idx]
	return "<code" + RenderAttrs(tok) + ">" + Escape(tok.Content) + "</code>"
}

func renderCodeBlock(tokens []*token.Token, idx int, _ *token.Env, _ *Renderer) string {
	tok := tokens[idx]
	return "<pre" + RenderAttrs(tok) + "><code>" + Escape(tok.Content) + "</code></pre>\n"
}

// renderFence renders fenced code. The first word of the info string becomes
// a language class; without one the language detector, if any, is asked.
func renderFence(tokens []*token.Token, idx int, _ *token.Env, r *Renderer) string {
	tok := tokens[idx]

	lang := ""
	if info := strings.TrimSpace(tok.Info); info != "" {
		lang = strings.Fields(info)[0]
	} else if r.detect != nil {
		lang = r.detect([]byte(tok.Content))
	}

	var attrs string
	if lang != "" {
		// Render on a copy so the token stream stays untouched.
		withClass := *tok
		withClass.Attrs = append([]token.Attr(nil), tok.Attrs...)
		withClass.AttrJoin("class", r.langPrefix+lang)
		attrs = RenderAttrs(&withClass)
	} else {
		attrs = RenderAttrs(tok)
	}

	return "<pre><code" + attrs + ">" + Escape(tok.Content) + "</code></pre>\n"
}

// renderImage fills alt from the image's children before rendering the tag.
func renderImage(tokens []*token.Token, idx int, _ *token.Env, r *Renderer) string {
	tok := tokens[idx]
	if i := tok.AttrIndex("alt"); i >= 0 {
		tok.Attrs[i].Value = RenderInlineAsText(tok.Children)
	}
	return r.RenderToken(tokens, idx)
}

func renderHardbreak(_ []*token.Token, _ int, _ *token.Env, r *Renderer) string {
	if r.xhtml {
		return "<br />\n"
	}
	return "<br>\n"
}

func renderSoftbreak(_ []*token.Token, _ int, _ *token.Env, _ *Renderer) string {
	return "\n"
}

func renderHTML(tokens []*token.Token, idx int, _ *token.Env, _ *Renderer) string {
	return tokens[idx].Content
}
