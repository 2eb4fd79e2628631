// Package intellisense exposes advq's key/value completion to host applications.
//
// A Provider decides what a search input should offer for a query and caret: the
// configured filter keys while the word under the caret awaits a key, or the
// options of one filter once the word reads "key:". An Engine applies a chosen
// suggestion back to a Session and returns the new query and caret for the input.
//
// # Basic Usage
//
//	set, _ := filters.Default()
//	engine := intellisense.NewEngine(intellisense.NewFilterProvider(set, intellisense.DefaultOptions()))
//	session := query.NewSession(set.Keys())
//	session.SetValue("status:")
//
//	sugg := engine.Suggest(session)
//	edit := engine.Apply(session, sugg.Items[0]) // "status:inactive "
package intellisense

import (
	"github.com/oakwood-commons/advq/internal/completion"
	"github.com/oakwood-commons/advq/pkg/filters"
)

// Provider computes the suggestions for a query and caret.
type Provider = completion.Provider

// Completion represents a single completion suggestion.
type Completion = completion.Completion

// CompletionKind indicates whether a completion inserts a key or a value.
type CompletionKind = completion.CompletionKind

// Completion kinds
const (
	CompletionFilterKey   = completion.CompletionFilterKey
	CompletionFilterValue = completion.CompletionFilterValue
)

// Suggestions is the list to render for one caret position.
type Suggestions = completion.Suggestions

// Options configures the built-in filter provider.
type Options = completion.Options

// Engine dispatches selections to a query.Session.
type Engine = completion.CompletionEngine

// DefaultOptions offers every key and every value.
func DefaultOptions() Options {
	return completion.DefaultOptions()
}

// NewFilterProvider returns the built-in provider over set.
func NewFilterProvider(set *filters.Set, opts Options) Provider {
	return completion.NewFilterProvider(set, opts)
}

// NewEngine wraps p.
func NewEngine(p Provider) *Engine {
	return completion.NewEngine(p)
}

var customProvider Provider

// SetProvider lets a host application replace the provider returned by
// NewProvider, for example to offer values looked up from a backend.
// Passing nil restores the built-in provider.
func SetProvider(p Provider) {
	customProvider = p
}

// NewProvider returns the provider installed with SetProvider, or the built-in
// filter provider over set.
func NewProvider(set *filters.Set, opts Options) Provider {
	if customProvider != nil {
		return customProvider
	}
	return NewFilterProvider(set, opts)
}
