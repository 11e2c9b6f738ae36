package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/figmark/internal/configloader"
	"github.com/yaklabco/figmark/pkg/config"
	"github.com/yaklabco/figmark/pkg/figure"
)

// engineFlags are the rendering flags shared by render and tokens. Each one
// overrides the configuration only when given on the command line.
type engineFlags struct {
	flavor     string
	language   string
	copyAttrs  string
	videoAttrs string
	audioAttrs string

	dataType        bool
	figcaption      bool
	tabIndex        bool
	link            bool
	media           bool
	attributes      bool
	linkify         bool
	xhtml           bool
	detectLanguages bool
}

type boolFlag struct {
	name  string
	value *bool
	usage string
	field func(cfg *config.Config) *bool
}

func (f *engineFlags) boolFlags() []boolFlag {
	return []boolFlag{
		{"data-type", &f.dataType, "add data-type=\"image\" or \"video\" to figures",
			func(c *config.Config) *bool { return &c.Figures.DataType }},
		{"figcaption", &f.figcaption, "move image descriptions into <figcaption>",
			func(c *config.Config) *bool { return &c.Figures.Figcaption }},
		{"tabindex", &f.tabIndex, "number figures with tabindex=\"1\", \"2\", ...",
			func(c *config.Config) *bool { return &c.Figures.TabIndex }},
		{"link", &f.link, "wrap bare figure images in a link to the image",
			func(c *config.Config) *bool { return &c.Figures.Link }},
		{"media", &f.media, "render video and audio files as <video> and <audio>",
			func(c *config.Config) *bool { return &c.Media.Enabled }},
		{"attributes", &f.attributes, "accept {#id .class key=value} blocks after images",
			func(c *config.Config) *bool { return &c.Attributes }},
		{"linkify", &f.linkify, "turn bare URLs into links",
			func(c *config.Config) *bool { return &c.Linkify }},
		{"xhtml", &f.xhtml, "write void elements as <br />",
			func(c *config.Config) *bool { return &c.XHTML }},
		{"detect-languages", &f.detectLanguages, "detect the language of unlabeled code fences",
			func(c *config.Config) *bool { return &c.DetectLanguages }},
	}
}

func addEngineFlags(cmd *cobra.Command, f *engineFlags) {
	defaults := config.NewConfig()
	flags := cmd.Flags()

	flags.StringVar(&f.flavor, "flavor", string(defaults.Flavor), "Markdown flavor: commonmark, gfm")
	flags.StringVar(&f.language, "language", defaults.Language, "language of the media fallback text")
	flags.StringVar(&f.copyAttrs, "copy-attrs", defaults.Figures.CopyAttrs.String(),
		"copy image attributes onto figures: true, false or a regular expression")
	flags.StringVar(&f.videoAttrs, "video-attrs", defaults.Media.VideoAttrs, "attributes for <video> tags")
	flags.StringVar(&f.audioAttrs, "audio-attrs", defaults.Media.AudioAttrs, "attributes for <audio> tags")

	names := []string{"flavor", "language", "copy-attrs", "video-attrs", "audio-attrs"}
	for _, bf := range f.boolFlags() {
		flags.BoolVar(bf.value, bf.name, *bf.field(defaults), bf.usage)
		names = append(names, bf.name)
	}
	setFlagGroup(flags, renderingFlagsGroup, names...)
}

// overrides returns one override per flag set on the command line.
func (f *engineFlags) overrides(cmd *cobra.Command) ([]configloader.Override, error) {
	changed := cmd.Flags().Changed
	var out []configloader.Override

	if changed("flavor") {
		flavor := config.Flavor(f.flavor)
		out = append(out, func(c *config.Config) { c.Flavor = flavor })
	}
	if changed("language") {
		language := f.language
		out = append(out, func(c *config.Config) { c.Language = language })
	}
	if changed("copy-attrs") {
		filter, err := figure.ParseAttrFilter(f.copyAttrs)
		if err != nil {
			return nil, fmt.Errorf("%w: --copy-attrs: %w", ErrInvalidUsage, err)
		}
		out = append(out, func(c *config.Config) { c.Figures.CopyAttrs = filter })
	}
	if changed("video-attrs") {
		attrs := f.videoAttrs
		out = append(out, func(c *config.Config) { c.Media.VideoAttrs = attrs })
	}
	if changed("audio-attrs") {
		attrs := f.audioAttrs
		out = append(out, func(c *config.Config) { c.Media.AudioAttrs = attrs })
	}

	for _, bf := range f.boolFlags() {
		if !changed(bf.name) {
			continue
		}
		value, field := *bf.value, bf.field
		out = append(out, func(c *config.Config) { *field(c) = value })
	}

	return out, nil
}
