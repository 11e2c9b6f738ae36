// Package markdown wires the goldmark parser, a chain of core rules and the
// HTML renderer into a markdown-it style engine.
//
// A render call runs three stages. The core chain turns source into a flat
// token stream (normalize, block, text_join, plus whatever plugins insert);
// the renderer then turns the stream into HTML. Plugins extend all three
// through Engine.Core, Engine.Parser and Engine.Renderer.
package markdown

import (
	"context"
	"fmt"
	"time"

	"github.com/yaklabco/figmark/internal/logging"
	"github.com/yaklabco/figmark/pkg/langdetect"
	gmparser "github.com/yaklabco/figmark/pkg/parser/goldmark"
	"github.com/yaklabco/figmark/pkg/render/html"
	"github.com/yaklabco/figmark/pkg/token"
)

// Plugin extends an engine. It runs once, when passed to Use.
type Plugin func(e *Engine) error

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	flavor     string
	attributes bool
	linkify    bool
	xhtml      bool
	detect     html.LanguageDetector
}

// WithFlavor selects "commonmark" or "gfm".
func WithFlavor(flavor string) Option {
	return func(c *engineConfig) { c.flavor = flavor }
}

// WithAttributes enables "{.class key=value}" blocks after images.
func WithAttributes() Option {
	return func(c *engineConfig) { c.attributes = true }
}

// WithLinkify turns bare URLs into links.
func WithLinkify() Option {
	return func(c *engineConfig) { c.linkify = true }
}

// WithXHTML closes void elements with " /".
func WithXHTML() Option {
	return func(c *engineConfig) { c.xhtml = true }
}

// WithLanguageDetection labels fences without an info string using
// content-based detection.
func WithLanguageDetection() Option {
	return func(c *engineConfig) { c.detect = langdetect.FenceLanguage }
}

// Engine renders Markdown to HTML.
//
// Configure the engine, including Use, before sharing it. Parse and Render
// are safe for concurrent use; every call owns its State and tokens.
type Engine struct {
	parser   *gmparser.Parser
	core     *Ruler
	renderer *html.Renderer
}

// New creates an engine with the default core chain.
func New(opts ...Option) *Engine {
	cfg := engineConfig{flavor: gmparser.FlavorCommonMark}
	for _, opt := range opts {
		opt(&cfg)
	}

	var parserOpts []gmparser.Option
	if cfg.attributes {
		parserOpts = append(parserOpts, gmparser.WithAttributes())
	}
	if cfg.linkify {
		parserOpts = append(parserOpts, gmparser.WithLinkify())
	}

	var renderOpts []html.Option
	if cfg.xhtml {
		renderOpts = append(renderOpts, html.WithXHTML())
	}
	if cfg.detect != nil {
		renderOpts = append(renderOpts, html.WithLanguageDetector(cfg.detect))
	}

	e := &Engine{
		parser:   gmparser.New(cfg.flavor, parserOpts...),
		core:     NewRuler(),
		renderer: html.New(renderOpts...),
	}
	e.registerCoreRules()
	return e
}

// Use applies plugins in order and stops at the first failure.
func (e *Engine) Use(plugins ...Plugin) error {
	for _, plugin := range plugins {
		if plugin == nil {
			continue
		}
		if err := plugin(e); err != nil {
			return fmt.Errorf("plugin: %w", err)
		}
	}
	return nil
}

// Core returns the core rule chain.
func (e *Engine) Core() *Ruler {
	return e.core
}

// Parser returns the block and inline parser.
func (e *Engine) Parser() *gmparser.Parser {
	return e.parser
}

// Renderer returns the HTML renderer.
func (e *Engine) Renderer() *html.Renderer {
	return e.renderer
}

// Parse runs the core chain over src. A nil env is replaced with an empty one.
func (e *Engine) Parse(ctx context.Context, src []byte, env *token.Env) (*State, error) {
	if env == nil {
		env = token.NewEnv("")
	}
	state := newState(e, string(src), env)

	logger := logging.FromContext(ctx)
	for _, rl := range e.core.chain() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("render cancelled: %w", ctx.Err())
		default:
		}

		start := time.Now()
		if err := rl.fn(ctx, state); err != nil {
			return nil, fmt.Errorf("rule %s: %w", rl.name, err)
		}
		logger.Debug("core rule finished",
			logging.FieldRule, rl.name,
			logging.FieldTokens, len(state.Tokens),
			logging.FieldDuration, time.Since(start))
	}

	return state, nil
}

// Render parses src and renders the result to HTML.
func (e *Engine) Render(ctx context.Context, src []byte, env *token.Env) (string, error) {
	state, err := e.Parse(ctx, src, env)
	if err != nil {
		return "", err
	}
	return e.renderer.Render(state.Tokens, state.Env), nil
}

// RenderTokens renders an already parsed stream.
func (e *Engine) RenderTokens(tokens []*token.Token, env *token.Env) string {
	return e.renderer.Render(tokens, env)
}
