package query

import (
	"sort"
	"strings"
)

// Filters maps a filter key to its values in encounter order. Every known key is
// present; keys that never occur map to an empty slice.
type Filters map[string][]string

// Values returns the values recorded for key.
func (f Filters) Values(key string) []string {
	return f[key]
}

// Active returns the keys that have at least one value, sorted.
func (f Filters) Active() []string {
	keys := make([]string, 0, len(f))
	for k, v := range f {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Result is the outcome of parsing a query.
type Result struct {
	Filters   Filters `json:"filters" yaml:"filters" toml:"filters"`
	Remaining string  `json:"remaining" yaml:"remaining" toml:"remaining"`
}

// Parse splits query into filter tokens for the known keys and the remaining free
// text. Tokens whose key is unknown, whose value is empty, or which carry no colon
// at all stay in the free text. Parse is pure: the same inputs always produce the
// same Result.
func Parse(query string, keys []string) Result {
	filters := make(Filters, len(keys))
	for _, k := range keys {
		filters[k] = []string{}
	}

	var rest []string
	for _, tok := range Tokens(query) {
		if tok.IsFilter(keys) {
			key := tok.Key()
			filters[key] = append(filters[key], tok.Value())
			continue
		}
		rest = append(rest, tok.Text)
	}

	return Result{
		Filters:   filters,
		Remaining: strings.TrimSpace(strings.Join(rest, " ")),
	}
}
