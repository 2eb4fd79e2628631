package query

import "unicode/utf8"

// Session holds the query and caret of one input surface. It has a single owner:
// the surface replaces the value and caret on every event and reads derived state
// (word, position, parse result) back from it. A Session is not safe for
// concurrent use.
type Session struct {
	keys  []string
	value string
	caret int
}

// NewSession returns an empty session recognising keys.
func NewSession(keys []string) *Session {
	return &Session{keys: append([]string(nil), keys...)}
}

// Keys returns the filter keys the session recognises.
func (s *Session) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Value returns the current query.
func (s *Session) Value() string { return s.value }

// Caret returns the current caret, possibly CaretUnknown.
func (s *Session) Caret() int { return s.caret }

// SetValue replaces the query and moves the caret to its end, where typing leaves it.
func (s *Session) SetValue(value string) {
	s.value = value
	s.caret = utf8.RuneCountInString(value)
}

// SetCaret replaces the caret. Out-of-range carets are kept as given; the derived
// operations degrade to an empty word for them.
func (s *Session) SetCaret(caret int) {
	s.caret = caret
}

// Set replaces query and caret together.
func (s *Session) Set(value string, caret int) {
	s.value = value
	s.caret = caret
}

// Word returns the word under the caret.
func (s *Session) Word() string {
	return WordAt(s.value, s.caret)
}

// Position classifies the word under the caret.
func (s *Session) Position() Position {
	return Classify(s.Word(), s.keys)
}

// Parse parses the current query.
func (s *Session) Parse() Result {
	return Parse(s.value, s.keys)
}

// SelectKey applies InsertFilterKey and adopts the result.
func (s *Session) SelectKey(key string) Edit {
	return s.apply(InsertFilterKey(s.value, s.caret, key))
}

// SelectValue applies InsertFilterValue and adopts the result.
func (s *Session) SelectValue(value string) Edit {
	return s.apply(InsertFilterValue(s.value, s.caret, value))
}

func (s *Session) apply(e Edit) Edit {
	s.value = e.Value
	s.caret = e.Caret
	return e
}
