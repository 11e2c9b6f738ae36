package goldmark

import (
	"github.com/yuin/goldmark/parser"

	"github.com/yaklabco/figmark/pkg/token"
)

// envKey stores the render environment in the goldmark parse context.
//
//nolint:gochecknoglobals // goldmark context keys are allocated once
var envKey = parser.NewContextKey()

// contextReferences resolves labels against the definitions goldmark has
// collected in a parse context.
type contextReferences struct {
	pc parser.Context
}

// Lookup implements token.References.
func (r contextReferences) Lookup(key string) (token.Reference, bool) {
	ref, ok := r.pc.Reference(key)
	if !ok {
		return token.Reference{}, false
	}
	return toReference(ref), true
}

// referenceChain consults each table in order.
type referenceChain []token.References

// Lookup implements token.References.
func (c referenceChain) Lookup(key string) (token.Reference, bool) {
	for _, refs := range c {
		if refs == nil {
			continue
		}
		if ref, ok := refs.Lookup(key); ok {
			return ref, true
		}
	}
	return token.Reference{}, false
}

func chainReferences(first, second token.References) token.References {
	if second == nil {
		return first
	}
	return referenceChain{first, second}
}

func toReference(ref parser.Reference) token.Reference {
	href := normalizeLink(string(ref.Destination()))
	if !validateLink(href) {
		href = ""
	}
	return token.Reference{
		Href:  href,
		Title: unescape(ref.Title()),
	}
}

// collectReferences snapshots the definitions of a finished parse so the
// environment no longer holds on to the goldmark context.
func collectReferences(pc parser.Context) token.ReferenceMap {
	refs := pc.References()
	out := make(token.ReferenceMap, len(refs))
	for _, ref := range refs {
		key := normalizeReference(string(ref.Label()))
		if _, exists := out[key]; exists {
			// The first definition wins.
			continue
		}
		out[key] = toReference(ref)
	}
	return out
}

// goldmarkReferences converts a reference table back into goldmark
// definitions so a nested parse can resolve the same labels. Tables whose
// entries cannot be enumerated contribute nothing.
func goldmarkReferences(refs token.References) []parser.Reference {
	switch r := refs.(type) {
	case contextReferences:
		return r.pc.References()
	case token.ReferenceMap:
		out := make([]parser.Reference, 0, len(r))
		for key, ref := range r {
			out = append(out, parser.NewReference([]byte(key), []byte(ref.Href), []byte(ref.Title)))
		}
		return out
	case referenceChain:
		var out []parser.Reference
		for _, inner := range r {
			out = append(out, goldmarkReferences(inner)...)
		}
		return out
	default:
		return nil
	}
}

// envFromContext returns the environment stored by Parse, or a bare one that
// resolves against the context's own definitions.
func envFromContext(pc parser.Context) *token.Env {
	if env, ok := pc.Get(envKey).(*token.Env); ok && env != nil {
		return env
	}
	env := token.NewEnv("")
	env.References = contextReferences{pc: pc}
	return env
}
