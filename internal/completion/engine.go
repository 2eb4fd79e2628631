//revive:disable:exported
package completion

import (
	"github.com/oakwood-commons/advq/pkg/query"
)

// Provider decides which suggestions to offer for a query and caret.
// Implementations return data only; wiring a selection back into the query is the
// engine's job.
type Provider interface {
	// Suggest returns the list to render for the word under caret. An empty
	// Suggestions means nothing should be shown.
	Suggest(value string, caret int) Suggestions
}

// Completion represents a single suggestion.
type Completion struct {
	Text    string         // The key or value inserted when selected
	Display string         // Display label
	Kind    CompletionKind // Key or value
	Key     string         // Owning filter key (values only)
	Detail  string         // Additional detail (option count, owning key)
	Score   int            // Relevance score (higher = more relevant)
}

// CompletionKind indicates what a completion inserts.
type CompletionKind int

const (
	CompletionFilterKey   CompletionKind = iota // Filter key, inserted as "<key>:"
	CompletionFilterValue                       // Filter value, inserted as "<key>:<value> "
)

func (k CompletionKind) String() string {
	if k == CompletionFilterValue {
		return "value"
	}
	return "key"
}

// Suggestions is the list to render for one caret position.
type Suggestions struct {
	Position query.Position
	Items    []Completion
}

// Empty reports whether there is nothing to show.
func (s Suggestions) Empty() bool {
	return len(s.Items) == 0
}

// Kind reports which list the suggestions belong to.
func (s Suggestions) Kind() CompletionKind {
	if s.Position.State == query.AwaitingValue {
		return CompletionFilterValue
	}
	return CompletionFilterKey
}

// CompletionEngine wraps a Provider and applies selections to a session.
type CompletionEngine struct {
	provider Provider
}

//revive:enable:exported

// NewEngine creates a new completion engine with the given provider.
func NewEngine(provider Provider) *CompletionEngine {
	return &CompletionEngine{provider: provider}
}

// GetCompletions returns the suggestions for value at caret.
func (e *CompletionEngine) GetCompletions(value string, caret int) Suggestions {
	return e.provider.Suggest(value, caret)
}

// Suggest returns the suggestions for the session's current state.
func (e *CompletionEngine) Suggest(s *query.Session) Suggestions {
	return e.provider.Suggest(s.Value(), s.Caret())
}

// Apply inserts the selected completion into the session and returns the edit the
// input surface must adopt.
func (e *CompletionEngine) Apply(s *query.Session, c Completion) query.Edit {
	if c.Kind == CompletionFilterValue {
		return s.SelectValue(c.Text)
	}
	return s.SelectKey(c.Text)
}
