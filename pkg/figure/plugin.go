package figure

import (
	"context"
	"fmt"

	"github.com/yaklabco/figmark/internal/logging"
	"github.com/yaklabco/figmark/pkg/markdown"
	"github.com/yaklabco/figmark/pkg/media"
	"github.com/yaklabco/figmark/pkg/render/html"
	"github.com/yaklabco/figmark/pkg/token"
)

// RuleName is the name of the core rule that promotes figures.
const RuleName = "implicit_figures"

// CounterFigures is the state counter holding the number of figures created.
const CounterFigures = "figures"

// Plugin registers the figure rewriter with an engine. With opts.Media set it
// also installs the media classifier and the video and audio render rules.
func Plugin(opts Options) markdown.Plugin {
	return func(e *markdown.Engine) error {
		rewriter := NewRewriter(opts)

		rule := func(ctx context.Context, state *markdown.State) error {
			n := rewriter.Rewrite(state.Tokens)
			state.Add(CounterFigures, n)
			logging.FromContext(ctx).Debug("figures promoted", logging.FieldFigures, n)
			return nil
		}
		if err := e.Core().Before(markdown.RuleTextJoin, RuleName, rule); err != nil {
			return fmt.Errorf("register %s: %w", RuleName, err)
		}

		if opts.Media {
			installMedia(e, opts)
		}
		return nil
	}
}

func installMedia(e *markdown.Engine, opts Options) {
	e.Parser().EnableMediaClassifier()

	var translator media.Translator = media.DefaultCatalog()
	if opts.Translator != nil {
		translator = opts.Translator
	}
	renderer := media.NewRenderer(media.RenderOptions{
		VideoAttrs: opts.VideoAttrs,
		AudioAttrs: opts.AudioAttrs,
	}, translator)

	rule := func(tokens []*token.Token, idx int, env *token.Env, _ *html.Renderer) string {
		return renderer.Render(tokens[idx], env)
	}
	e.Renderer().SetRule(token.KindVideo, rule)
	e.Renderer().SetRule(token.KindAudio, rule)
}
