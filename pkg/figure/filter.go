package figure

import (
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFilter is returned when a copy_attrs value is neither a boolean
// nor a valid pattern.
var ErrInvalidFilter = errors.New("invalid attribute filter")

const filterMatchTimeout = 50 * time.Millisecond

// AttrFilter selects which image attributes are copied onto the figure.
// The zero value copies nothing.
type AttrFilter struct {
	all     bool
	pattern string
	re      *regexp2.Regexp
}

// CopyAll returns a filter that copies every attribute.
func CopyAll() AttrFilter {
	return AttrFilter{all: true}
}

// CopyMatching returns a filter that copies attributes whose name matches
// pattern. The pattern uses JavaScript regular expression syntax and is not
// anchored, so "class" also matches "subclass".
func CopyMatching(pattern string) (AttrFilter, error) {
	if pattern == "" {
		return CopyAll(), nil
	}

	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return AttrFilter{}, fmt.Errorf("%w: %q: %w", ErrInvalidFilter, pattern, err)
	}
	re.MatchTimeout = filterMatchTimeout

	return AttrFilter{pattern: pattern, re: re}, nil
}

// MustCopyMatching is like CopyMatching but panics on an invalid pattern.
func MustCopyMatching(pattern string) AttrFilter {
	f, err := CopyMatching(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

// Enabled reports whether the filter copies anything at all.
func (f AttrFilter) Enabled() bool {
	return f.all || f.re != nil
}

// Pattern returns the filter pattern, or "" for the all and off filters.
func (f AttrFilter) Pattern() string {
	return f.pattern
}

// Match reports whether an attribute name passes the filter.
func (f AttrFilter) Match(name string) bool {
	if f.all {
		return true
	}
	if f.re == nil {
		return false
	}
	ok, err := f.re.MatchString(name)
	return err == nil && ok
}

// String renders the filter the way it is written in configuration.
func (f AttrFilter) String() string {
	switch {
	case f.all:
		return "true"
	case f.re != nil:
		return f.pattern
	default:
		return "false"
	}
}

// UnmarshalYAML accepts a boolean or a pattern string.
func (f *AttrFilter) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected boolean or string", ErrInvalidFilter, node.Line)
	}

	if node.Tag == "!!bool" {
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		if enabled {
			*f = CopyAll()
		} else {
			*f = AttrFilter{}
		}
		return nil
	}

	parsed, err := ParseAttrFilter(node.Value)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalYAML writes the filter back as a boolean or pattern.
func (f AttrFilter) MarshalYAML() (any, error) {
	if f.re != nil {
		return f.pattern, nil
	}
	return f.all, nil
}

// ParseAttrFilter parses a command-line value: "true", "false" or a pattern.
func ParseAttrFilter(value string) (AttrFilter, error) {
	switch value {
	case "", "false":
		return AttrFilter{}, nil
	case "true":
		return CopyAll(), nil
	default:
		return CopyMatching(value)
	}
}
