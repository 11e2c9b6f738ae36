package media

import (
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/figmark/pkg/token"
)

// Default extra attributes for the HTML5 media elements.
const (
	DefaultVideoAttrs = `controls class="html5-video-player"`
	DefaultAudioAttrs = `controls class="html5-audio-player"`
)

// RenderOptions configures the media renderer.
type RenderOptions struct {
	// VideoAttrs is inserted verbatim into every <video> tag.
	VideoAttrs string

	// AudioAttrs is inserted verbatim into every <audio> tag.
	AudioAttrs string
}

// DefaultRenderOptions returns the default player attributes.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		VideoAttrs: DefaultVideoAttrs,
		AudioAttrs: DefaultAudioAttrs,
	}
}

// Renderer renders video and audio tokens.
type Renderer struct {
	opts       RenderOptions
	translator Translator
}

// NewRenderer returns a renderer. A nil translator leaves message keys untranslated.
func NewRenderer(opts RenderOptions, translator Translator) *Renderer {
	return &Renderer{
		opts:       opts,
		translator: translator,
	}
}

// Render returns the HTML5 element for a video or audio token, and "" for
// any other token.
func (r *Renderer) Render(tok *token.Token, env *token.Env) string {
	if tok == nil {
		return ""
	}

	var attrs, notSupported string
	switch tok.Kind {
	case token.KindVideo:
		attrs, notSupported = r.opts.VideoAttrs, KeyVideoNotSupported
	case token.KindAudio:
		attrs, notSupported = r.opts.AudioAttrs, KeyAudioNotSupported
	default:
		return ""
	}

	src, ok := tok.AttrGet("src")
	if !ok {
		return ""
	}
	src = escape(src)
	name := tok.Kind.String()

	lang := ""
	if env != nil {
		lang = env.Language
	}

	var buf strings.Builder
	buf.WriteString("<")
	buf.WriteString(name)
	buf.WriteString(` src="`)
	buf.WriteString(src)
	buf.WriteString(`"`)

	if title, ok := tok.AttrGet("title"); ok {
		buf.WriteString(` title="`)
		buf.WriteString(escape(title))
		buf.WriteString(`"`)
	}

	if attrs = strings.TrimSpace(attrs); attrs != "" {
		buf.WriteString(" ")
		buf.WriteString(attrs)
	}
	buf.WriteString(">\n")

	buf.WriteString(r.translate(lang, notSupported))
	buf.WriteString("\n")
	buf.WriteString(r.translate(lang, KeyFallbackLink, src))

	if tok.Content != "" {
		buf.WriteString("\n")
		buf.WriteString(r.translate(lang, KeyDescription, escape(tok.Content)))
	}

	buf.WriteString("\n</")
	buf.WriteString(name)
	buf.WriteString(">")

	return buf.String()
}

func (r *Renderer) translate(lang, key string, args ...string) string {
	if r.translator == nil {
		return key
	}
	return r.translator.Translate(lang, key, args...)
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
