package markdown

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrRuleNotFound is returned when a named rule or anchor does not exist.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrDuplicateRule is returned when a rule name is registered twice.
	ErrDuplicateRule = errors.New("duplicate rule")
)

// RuleFunc is one step of the core chain. It reads and mutates state.
type RuleFunc func(ctx context.Context, state *State) error

type rule struct {
	name    string
	fn      RuleFunc
	enabled bool
}

// Ruler holds an ordered chain of named rules.
type Ruler struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRuler creates an empty chain.
func NewRuler() *Ruler {
	return &Ruler{}
}

// Push appends a rule to the end of the chain.
func (r *Ruler) Push(name string, fn RuleFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, name)
	}
	r.rules = append(r.rules, rule{name: name, fn: fn, enabled: true})
	return nil
}

// At replaces the function of an existing rule, keeping its position.
func (r *Ruler) At(name string, fn RuleFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.index(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrRuleNotFound, name)
	}
	r.rules[idx].fn = fn
	return nil
}

// Before inserts a rule immediately before anchor.
func (r *Ruler) Before(anchor, name string, fn RuleFunc) error {
	return r.insert(anchor, name, fn, 0)
}

// After inserts a rule immediately after anchor.
func (r *Ruler) After(anchor, name string, fn RuleFunc) error {
	return r.insert(anchor, name, fn, 1)
}

func (r *Ruler) insert(anchor, name string, fn RuleFunc, offset int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.index(anchor)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrRuleNotFound, anchor)
	}
	if r.index(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, name)
	}
	r.rules = slices.Insert(r.rules, idx+offset, rule{name: name, fn: fn, enabled: true})
	return nil
}

// Enable turns named rules on. All names are checked before any change.
func (r *Ruler) Enable(names ...string) error {
	return r.setEnabled(names, true)
}

// Disable turns named rules off. All names are checked before any change.
func (r *Ruler) Disable(names ...string) error {
	return r.setEnabled(names, false)
}

func (r *Ruler) setEnabled(names []string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, name := range names {
		if r.index(name) < 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrRuleNotFound, name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	for _, name := range names {
		r.rules[r.index(name)].enabled = enabled
	}
	return nil
}

// Names returns the names of the enabled rules in execution order.
func (r *Ruler) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rules))
	for _, rl := range r.rules {
		if rl.enabled {
			names = append(names, rl.name)
		}
	}
	return names
}

// chain returns a snapshot of the enabled rules.
func (r *Ruler) chain() []rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rule, 0, len(r.rules))
	for _, rl := range r.rules {
		if rl.enabled {
			out = append(out, rl)
		}
	}
	return out
}

func (r *Ruler) index(name string) int {
	return slices.IndexFunc(r.rules, func(rl rule) bool {
		return rl.name == name
	})
}
