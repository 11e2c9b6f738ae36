package markdown

import (
	"context"
	"strings"

	"github.com/yaklabco/figmark/pkg/token"
)

// Names of the default core rules.
const (
	RuleNormalize = "normalize"
	RuleBlock     = "block"
	RuleTextJoin  = "text_join"
)

func (e *Engine) registerCoreRules() {
	for _, rl := range []struct {
		name string
		fn   RuleFunc
	}{
		{RuleNormalize, normalize},
		{RuleBlock, e.block},
		{RuleTextJoin, textJoin},
	} {
		//nolint:errcheck // the names are distinct and the chain is empty
		e.core.Push(rl.name, rl.fn)
	}
}

//nolint:gochecknoglobals // Read-only replacer.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\x00", "�")

// normalize unifies line endings and replaces NUL characters.
func normalize(_ context.Context, state *State) error {
	state.Src = newlines.Replace(state.Src)
	return nil
}

// block parses the source into the token stream.
func (e *Engine) block(ctx context.Context, state *State) error {
	tokens, err := e.parser.Parse(ctx, []byte(state.Src), state.Env)
	if err != nil {
		return err
	}
	state.Tokens = tokens
	return nil
}

// textJoin merges adjacent text tokens in the children of inline tokens.
func textJoin(_ context.Context, state *State) error {
	for _, tok := range state.Tokens {
		if tok.Kind != token.KindInline || len(tok.Children) < 2 {
			continue
		}
		tok.Children = joinText(tok.Children)
	}
	return nil
}

func joinText(children []*token.Token) []*token.Token {
	out := children[:0]
	for _, child := range children {
		if n := len(out); n > 0 && child.Kind == token.KindText && out[n-1].Kind == token.KindText {
			out[n-1].Content += child.Content
			continue
		}
		out = append(out, child)
	}
	// Release trailing slots so merged tokens can be collected.
	clear(children[len(out):])
	return out
}
