package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/figmark/pkg/media"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. Otherwise only the
	// flavor is set and everything else is left commented out.
	Full bool
}

// setting is one documented key of the template.
type setting struct {
	section string
	key     string
	value   string
	doc     string
}

// templateSettings lists every file-backed setting in the order it is written.
//
//nolint:gochecknoglobals // Read-only lookup table.
var templateSettings = []setting{
	{"", "flavor", "commonmark", "Markdown flavor: commonmark or gfm."},
	{"figures", "data_type", "false",
		`Add data-type="image" or data-type="video" to every figure, chosen by the image's file extension.`},
	{"figures", "figcaption", "false", "Move the image description into a <figcaption> after the image."},
	{"figures", "copy_attrs", "false",
		"Copy image attributes onto the figure. true copies all of them, a regular expression copies the matching names."},
	{"figures", "tabindex", "false", "Number the figures of each document with tabindex 1, 2, 3 and so on."},
	{"figures", "link", "false", "Wrap images that are not already links in a link to the image itself."},
	{"media", "enabled", "true", "Render images that point at video or audio files as <video> and <audio> elements."},
	{"media", "video_attrs", "'" + media.DefaultVideoAttrs + "'", "Attributes inserted verbatim into every <video> tag."},
	{"media", "audio_attrs", "'" + media.DefaultAudioAttrs + "'", "Attributes inserted verbatim into every <audio> tag."},
	{"", "attributes", "false", "Accept {.class #id key=value} attribute blocks after images."},
	{"", "linkify", "false", "Turn bare URLs into links."},
	{"", "xhtml", "false", "Close void elements XHTML style, as in <br />."},
	{"", "language", "en", "Language of the media fallback text. A document's front matter lang overrides it."},
	{"", "detect_languages", "false", "Guess the language of fenced code blocks that have no info string."},
	{"output", "dir", `""`, "Directory for rendered files. Empty writes each file next to its source."},
	{"output", "extension", ".html", "Extension of rendered files."},
}

// GenerateTemplate creates a documented configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	section := ""
	for _, s := range templateSettings {
		if s.section != section {
			section = s.section
			if section != "" {
				fmt.Fprintf(&buf, "\n%s%s:\n", commentPrefix(opts, false), section)
			}
		}

		indent := ""
		if s.section != "" {
			indent = "  "
		}

		fmt.Fprintf(&buf, "\n%s# %s\n", indent, wrapComment(s.doc, commentWrapWidth, indent))
		fmt.Fprintf(&buf, "%s%s%s: %s\n", commentPrefix(opts, s.key == "flavor"), indent, s.key, s.value)
	}

	buf.WriteString("\n# File patterns to skip when rendering directories.\n")
	buf.WriteString("# ignore:\n#   - \"node_modules/**\"\n#   - \"CHANGELOG.md\"\n")

	return buf.Bytes(), nil
}

// commentPrefix comments out settings that a minimal template leaves unset.
func commentPrefix(opts TemplateOptions, always bool) string {
	if opts.Full || always {
		return ""
	}
	return "# "
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int, indent string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+indent+"# ")
}

// DefaultTemplateHeader returns the header for generated configs.
func DefaultTemplateHeader() string {
	return `# figmark configuration
# See: https://github.com/yaklabco/figmark
`
}
