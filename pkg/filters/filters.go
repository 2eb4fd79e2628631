// Package filters holds the static filter configuration of an advq search input:
// an ordered list of filter keys, each with a display label and an ordered list of
// value options.
package filters

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyKey is returned when a filter definition has no key.
	ErrEmptyKey = errors.New("filter key is empty")
	// ErrInvalidKey is returned when a key or option value contains a space or a key contains a colon.
	ErrInvalidKey = errors.New("filter key is invalid")
	// ErrDuplicateKey is returned when two definitions share a key.
	ErrDuplicateKey = errors.New("duplicate filter key")
)

// Option is one selectable value of a filter.
type Option struct {
	Value string `yaml:"value" json:"value" toml:"value"`
	Label string `yaml:"label,omitempty" json:"label,omitempty" toml:"label,omitempty"`
}

// Definition declares a filter key and its options.
type Definition struct {
	Key     string   `yaml:"key" json:"key" toml:"key"`
	Label   string   `yaml:"label,omitempty" json:"label,omitempty" toml:"label,omitempty"`
	Options []Option `yaml:"options,omitempty" json:"options,omitempty" toml:"options,omitempty"`
}

// Set is a validated, ordered collection of filter definitions.
type Set struct {
	defs  []Definition
	index map[string]int
}

// New validates defs and returns them as a Set. Empty labels default to the key
// or the option value.
func New(defs ...Definition) (*Set, error) {
	s := &Set{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		d.Key = strings.TrimSpace(d.Key)
		if d.Key == "" {
			return nil, fmt.Errorf("filter #%d: %w", i+1, ErrEmptyKey)
		}
		if strings.ContainsAny(d.Key, " :") {
			return nil, fmt.Errorf("filter %q: %w: must not contain spaces or colons", d.Key, ErrInvalidKey)
		}
		if _, dup := s.index[d.Key]; dup {
			return nil, fmt.Errorf("filter %q: %w", d.Key, ErrDuplicateKey)
		}
		if strings.TrimSpace(d.Label) == "" {
			d.Label = d.Key
		}

		opts := make([]Option, 0, len(d.Options))
		for _, o := range d.Options {
			if o.Value == "" || strings.Contains(o.Value, " ") {
				return nil, fmt.Errorf("filter %q option %q: %w: value must be non-empty without spaces", d.Key, o.Value, ErrInvalidKey)
			}
			if strings.TrimSpace(o.Label) == "" {
				o.Label = o.Value
			}
			opts = append(opts, o)
		}
		d.Options = opts

		s.index[d.Key] = len(s.defs)
		s.defs = append(s.defs, d)
	}
	return s, nil
}

// Keys returns the filter keys in configured order.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, len(s.defs))
	for i, d := range s.defs {
		keys[i] = d.Key
	}
	return keys
}

// Lookup returns the definition for key.
func (s *Set) Lookup(key string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	i, ok := s.index[key]
	if !ok {
		return Definition{}, false
	}
	return s.defs[i], true
}

// Definitions returns a copy of the definitions in configured order.
func (s *Set) Definitions() []Definition {
	if s == nil {
		return nil
	}
	out := make([]Definition, len(s.defs))
	for i, d := range s.defs {
		d.Options = append([]Option(nil), d.Options...)
		out[i] = d
	}
	return out
}

// Len returns the number of filters.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.defs)
}
