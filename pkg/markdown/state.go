package markdown

import (
	"sync"

	"github.com/yaklabco/figmark/pkg/token"
)

// State is the working state of one render call.
type State struct {
	// Src is the source text. The normalize rule rewrites it in place.
	Src string

	// Env is the environment passed to Parse.
	Env *token.Env

	// Tokens is the block token stream, filled by the block rule.
	Tokens []*token.Token

	engine *Engine

	mu       sync.Mutex
	counters map[string]int
}

func newState(e *Engine, src string, env *token.Env) *State {
	return &State{
		Src:    src,
		Env:    env,
		engine: e,
	}
}

// Engine returns the engine running this state.
func (s *State) Engine() *Engine {
	return s.engine
}

// Add increments the named counter by n.
func (s *State) Add(name string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counters == nil {
		s.counters = make(map[string]int)
	}
	s.counters[name] += n
}

// Counter returns the value of the named counter.
func (s *State) Counter(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counters[name]
}

// Counters returns a copy of all counters.
func (s *State) Counters() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.counters))
	for name, n := range s.counters {
		out[name] = n
	}
	return out
}
