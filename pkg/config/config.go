// Package config defines figmark's configuration types.
// These types are plain data; discovery and layering live in internal/configloader.
package config

import (
	"errors"

	"github.com/yaklabco/figmark/pkg/figure"
	"github.com/yaklabco/figmark/pkg/markdown"
	"github.com/yaklabco/figmark/pkg/media"
	gmparser "github.com/yaklabco/figmark/pkg/parser/goldmark"
)

// ErrInvalidConfig is returned for configuration values that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Flavor selects the Markdown dialect.
type Flavor string

const (
	FlavorCommonMark Flavor = gmparser.FlavorCommonMark
	FlavorGFM        Flavor = gmparser.FlavorGFM
)

// IsValid reports whether the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// ColorMode controls terminal color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the color mode is known.
func (m ColorMode) IsValid() bool {
	return m == ColorAuto || m == ColorAlways || m == ColorNever
}

// FiguresConfig enables the figure enrichments.
type FiguresConfig struct {
	DataType   bool              `yaml:"data_type"`
	Figcaption bool              `yaml:"figcaption"`
	CopyAttrs  figure.AttrFilter `yaml:"copy_attrs"`
	TabIndex   bool              `yaml:"tabindex"`
	Link       bool              `yaml:"link"`
}

// MediaConfig controls video and audio rendering.
type MediaConfig struct {
	Enabled    bool   `yaml:"enabled"`
	VideoAttrs string `yaml:"video_attrs"`
	AudioAttrs string `yaml:"audio_attrs"`
}

// OutputConfig controls where rendered files are written.
type OutputConfig struct {
	// Dir is the output directory. Empty writes next to each source file.
	Dir string `yaml:"dir"`

	// Extension replaces the source extension.
	Extension string `yaml:"extension"`
}

// Config is the complete figmark configuration.
type Config struct {
	Flavor          Flavor        `yaml:"flavor"`
	Figures         FiguresConfig `yaml:"figures"`
	Media           MediaConfig   `yaml:"media"`
	Attributes      bool          `yaml:"attributes"`
	Linkify         bool          `yaml:"linkify"`
	XHTML           bool          `yaml:"xhtml"`
	Language        string        `yaml:"language"`
	DetectLanguages bool          `yaml:"detect_languages"`
	Ignore          []string      `yaml:"ignore"`
	Output          OutputConfig  `yaml:"output"`

	// CLI-only options (not persisted to config files).
	Jobs    int       `yaml:"-"`
	Watch   bool      `yaml:"-"`
	Summary bool      `yaml:"-"`
	Color   ColorMode `yaml:"-"`
}

// NewConfig returns a configuration with default values.
func NewConfig() *Config {
	return &Config{
		Flavor: FlavorCommonMark,
		Media: MediaConfig{
			Enabled:    true,
			VideoAttrs: media.DefaultVideoAttrs,
			AudioAttrs: media.DefaultAudioAttrs,
		},
		Language: "en",
		Output: OutputConfig{
			Extension: ".html",
		},
		Color: ColorAuto,
	}
}

// FigureOptions converts the configuration into rewriter options.
func (c *Config) FigureOptions() figure.Options {
	return figure.Options{
		DataType:   c.Figures.DataType,
		Link:       c.Figures.Link,
		Figcaption: c.Figures.Figcaption,
		CopyAttrs:  c.Figures.CopyAttrs,
		TabIndex:   c.Figures.TabIndex,
		Media:      c.Media.Enabled,
		VideoAttrs: c.Media.VideoAttrs,
		AudioAttrs: c.Media.AudioAttrs,
	}
}

// EngineOptions converts the configuration into engine options.
func (c *Config) EngineOptions() []markdown.Option {
	opts := []markdown.Option{markdown.WithFlavor(string(c.Flavor))}
	if c.Attributes {
		opts = append(opts, markdown.WithAttributes())
	}
	if c.Linkify {
		opts = append(opts, markdown.WithLinkify())
	}
	if c.XHTML {
		opts = append(opts, markdown.WithXHTML())
	}
	if c.DetectLanguages {
		opts = append(opts, markdown.WithLanguageDetection())
	}
	return opts
}

// NewEngine builds an engine with the figure plugin installed.
func (c *Config) NewEngine() (*markdown.Engine, error) {
	engine := markdown.New(c.EngineOptions()...)
	if err := engine.Use(figure.Plugin(c.FigureOptions())); err != nil {
		return nil, err
	}
	return engine, nil
}
