package query

// State is the suggestion state of the caret.
type State int

const (
	// AwaitingKey offers the list of filter keys. It covers an empty word, a
	// partially typed key, and plain free text.
	AwaitingKey State = iota
	// AwaitingValue offers the options of Position.Key.
	AwaitingValue
)

func (s State) String() string {
	switch s {
	case AwaitingValue:
		return "awaiting-value"
	default:
		return "awaiting-key"
	}
}

// Position is the classification of the word under the caret.
type Position struct {
	State State
	Key   string // set only when State is AwaitingValue
	Word  string // the word the classification was made from
}

// Classify decides what the caret is waiting for. The word must be exactly
// "<key>:" for a known key to await a value; anything else awaits a key. No
// history is involved, so the result depends on the word alone.
func Classify(word string, keys []string) Position {
	for _, k := range keys {
		if word == k+":" {
			return Position{State: AwaitingValue, Key: k, Word: word}
		}
	}
	return Position{State: AwaitingKey, Word: word}
}

// ClassifyAt classifies the word under caret in value.
func ClassifyAt(value string, caret int, keys []string) Position {
	return Classify(WordAt(value, caret), keys)
}

// ShowsKeys reports whether the key list should be offered.
func (p Position) ShowsKeys() bool {
	return p.State == AwaitingKey
}

// ShowsValuesFor reports whether the value list of key should be offered.
func (p Position) ShowsValuesFor(key string) bool {
	return p.State == AwaitingValue && p.Key == key
}

func (p Position) String() string {
	if p.State == AwaitingValue {
		return p.State.String() + " " + p.Key
	}
	return p.State.String()
}
