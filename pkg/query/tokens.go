package query

import (
	"strings"
	"unicode/utf8"
)

// Token is one space-delimited part of a query. Consecutive spaces produce empty
// tokens so that positions line up with the original text.
type Token struct {
	Text  string
	Start int // rune offset of the first rune
	End   int // rune offset one past the last rune
}

// Tokens splits query on single spaces.
func Tokens(query string) []Token {
	parts := strings.Split(query, " ")
	tokens := make([]Token, 0, len(parts))
	offset := 0
	for _, part := range parts {
		n := utf8.RuneCountInString(part)
		tokens = append(tokens, Token{Text: part, Start: offset, End: offset + n})
		offset += n + 1
	}
	return tokens
}

// HasColon reports whether the token carries a key separator.
func (t Token) HasColon() bool {
	return strings.Contains(t.Text, ":")
}

// Key returns the text before the first colon, or "" when there is no colon.
func (t Token) Key() string {
	key, _, ok := strings.Cut(t.Text, ":")
	if !ok {
		return ""
	}
	return key
}

// Value returns everything after the first colon, further colons included.
func (t Token) Value() string {
	_, value, _ := strings.Cut(t.Text, ":")
	return value
}

// IsFilter reports whether the token is a complete filter token for one of keys.
// A pending "key:" token with an empty value is not a filter.
func (t Token) IsFilter(keys []string) bool {
	if !t.HasColon() || t.Value() == "" {
		return false
	}
	return containsKey(keys, t.Key())
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
