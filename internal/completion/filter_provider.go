package completion

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/advq/pkg/filters"
	"github.com/oakwood-commons/advq/pkg/query"
)

// Options configures a FilterProvider.
type Options struct {
	// PrefixMatch narrows the key list to keys starting with the word under the
	// caret. Off by default: every key is offered.
	PrefixMatch bool

	// CaseSensitive controls prefix matching.
	CaseSensitive bool

	// MaxResults limits the number of items. 0 means no limit.
	MaxResults int
}

// DefaultOptions offers every key and every value.
func DefaultOptions() Options {
	return Options{}
}

// FilterProvider offers filter keys while the caret awaits a key and the options
// of one filter while it awaits that filter's value.
type FilterProvider struct {
	set  *filters.Set
	opts Options
}

// NewFilterProvider creates a provider over set.
func NewFilterProvider(set *filters.Set, opts Options) *FilterProvider {
	return &FilterProvider{set: set, opts: opts}
}

// Suggest implements Provider.
func (p *FilterProvider) Suggest(value string, caret int) Suggestions {
	pos := query.ClassifyAt(value, caret, p.set.Keys())

	var items []Completion
	if pos.State == query.AwaitingValue {
		items = p.valueItems(pos.Key)
	} else {
		items = p.keyItems(pos.Word)
	}
	if p.opts.MaxResults > 0 && len(items) > p.opts.MaxResults {
		items = items[:p.opts.MaxResults]
	}
	return Suggestions{Position: pos, Items: items}
}

func (p *FilterProvider) keyItems(word string) []Completion {
	defs := p.set.Definitions()
	items := make([]Completion, 0, len(defs))
	for i, d := range defs {
		if p.opts.PrefixMatch && !p.hasPrefix(d.Key, word) {
			continue
		}
		items = append(items, Completion{
			Text:    d.Key,
			Display: d.Label,
			Kind:    CompletionFilterKey,
			Detail:  optionCount(len(d.Options)),
			Score:   len(defs) - i,
		})
	}
	return items
}

func (p *FilterProvider) valueItems(key string) []Completion {
	def, ok := p.set.Lookup(key)
	if !ok {
		return nil
	}
	items := make([]Completion, 0, len(def.Options))
	for i, o := range def.Options {
		items = append(items, Completion{
			Text:    o.Value,
			Display: o.Label,
			Kind:    CompletionFilterValue,
			Key:     key,
			Detail:  def.Label,
			Score:   len(def.Options) - i,
		})
	}
	return items
}

func (p *FilterProvider) hasPrefix(key, word string) bool {
	if p.opts.CaseSensitive {
		return strings.HasPrefix(key, word)
	}
	return strings.HasPrefix(strings.ToLower(key), strings.ToLower(word))
}

func optionCount(n int) string {
	if n == 1 {
		return "1 option"
	}
	return fmt.Sprintf("%d options", n)
}
