package query

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Edit is a rewritten query together with the caret the input should adopt.
type Edit struct {
	Value string `json:"value" yaml:"value" toml:"value"`
	Caret int    `json:"caret" yaml:"caret" toml:"caret"`
}

// InsertFilterKey puts "<key>:" in place of the word under caret. The word is
// located by text, so when the same word occurs twice the first occurrence is the
// one replaced. When no part matches (caret unknown or out of range) the token is
// inserted at the part index given by the caret, clamped to the query, and nothing
// is removed. No trailing space is added; the value insertion supplies it.
//
// key is not validated against the configured filters.
func InsertFilterKey(value string, caret int, key string) Edit {
	word := WordAt(value, caret)
	parts := strings.Split(value, " ")
	token := key + ":"

	idx := slices.Index(parts, word)
	if idx >= 0 {
		parts[idx] = token
	} else {
		idx = min(max(caret, 0), len(parts))
		parts = slices.Insert(parts, idx, token)
	}

	return Edit{Value: strings.Join(parts, " "), Caret: partEnd(parts, idx)}
}

// InsertFilterValue completes the "<key>:" word under caret as "<key>:<value> ".
// The trailing space moves the caret past the finished token. When the word under
// caret has no colon the query is returned unchanged with the caret untouched.
//
// filterValue is not validated against the options of the key.
func InsertFilterValue(value string, caret int, filterValue string) Edit {
	word := WordAt(value, caret)
	key, _, ok := strings.Cut(word, ":")
	if !ok {
		return Edit{Value: value, Caret: caret}
	}

	parts := strings.Split(value, " ")
	idx := slices.Index(parts, word)
	if idx < 0 {
		return Edit{Value: value, Caret: caret}
	}
	parts[idx] = key + ":" + filterValue + " "

	return Edit{Value: strings.Join(parts, " "), Caret: partEnd(parts, idx)}
}

// partEnd returns the rune offset just past parts[idx] once parts are joined with
// single spaces.
func partEnd(parts []string, idx int) int {
	end := idx
	for _, p := range parts[:idx+1] {
		end += utf8.RuneCountInString(p)
	}
	return end
}
