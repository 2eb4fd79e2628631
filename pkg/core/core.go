// Package core is the library entry point for applying advq queries: it binds a
// filter set to the parser, the completion engine and the record matcher.
package core

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/advq/internal/completion"
	"github.com/oakwood-commons/advq/internal/limiter"
	"github.com/oakwood-commons/advq/internal/search"
	"github.com/oakwood-commons/advq/pkg/filters"
	"github.com/oakwood-commons/advq/pkg/intellisense"
	"github.com/oakwood-commons/advq/pkg/loader"
	"github.com/oakwood-commons/advq/pkg/logger"
	"github.com/oakwood-commons/advq/pkg/query"
)

// Matcher decides whether a record satisfies a compiled query.
type Matcher interface {
	Match(record interface{}) (bool, error)
}

// Compiler turns a parse result into a Matcher.
type Compiler interface {
	Compile(res query.Result) (Matcher, error)
}

// Page selects a window of the matched records.
type Page struct {
	Limit  int // At most this many records (0 = unlimited)
	Offset int // Skip the first N records
	Tail   int // Only the last N records; exclusive with Limit
}

// Engine parses, completes and matches queries for one filter set.
type Engine struct {
	Filters  *filters.Set
	Compiler Compiler
	Options  completion.Options
	Logger   logr.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithFilters sets the filter set. The built-in default set is used otherwise.
func WithFilters(set *filters.Set) Option {
	return func(e *Engine) {
		e.Filters = set
	}
}

// WithCompiler replaces the CEL compiler.
func WithCompiler(c Compiler) Option {
	return func(e *Engine) {
		e.Compiler = c
	}
}

// WithPrefixMatch narrows key suggestions to keys starting with the current word.
func WithPrefixMatch(enabled bool) Option {
	return func(e *Engine) {
		e.Options.PrefixMatch = enabled
	}
}

// WithLogger sets the logger used when neither the search context nor the
// process carries one.
func WithLogger(lgr logr.Logger) Option {
	return func(e *Engine) {
		e.Logger = lgr
	}
}

// New creates an Engine with defaults.
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{
		Options: completion.DefaultOptions(),
		Logger:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.Filters == nil {
		set, err := filters.Default()
		if err != nil {
			return nil, err
		}
		engine.Filters = set
	}
	if engine.Compiler == nil {
		ev, err := search.NewEvaluator(engine.Filters.Keys())
		if err != nil {
			return nil, err
		}
		engine.Compiler = celCompiler{ev: ev}
	}
	return engine, nil
}

// LoadRecords parses input (JSON, YAML, TOML, NDJSON) into records.
func LoadRecords(input string) ([]interface{}, error) {
	return loader.LoadRecords(input)
}

// LoadFile reads records from path, or from r when path is "-".
func LoadFile(path string, r io.Reader) ([]interface{}, error) {
	return loader.LoadFile(path, r)
}

// Keys returns the configured filter keys in order.
func (e *Engine) Keys() []string {
	return e.Filters.Keys()
}

// Parse splits q into filter values and remaining text.
func (e *Engine) Parse(q string) query.Result {
	return query.Parse(q, e.Filters.Keys())
}

// NewSession returns an input session recognising the engine's keys.
func (e *Engine) NewSession() *query.Session {
	return query.NewSession(e.Filters.Keys())
}

// Completions returns the suggestions for q at caret.
func (e *Engine) Completions(q string, caret int) completion.Suggestions {
	return e.completionEngine().GetCompletions(q, caret)
}

// Select applies a suggestion to s and returns the new query and caret.
func (e *Engine) Select(s *query.Session, c completion.Completion) query.Edit {
	return e.completionEngine().Apply(s, c)
}

// completionEngine honours a provider installed with intellisense.SetProvider.
func (e *Engine) completionEngine() *completion.CompletionEngine {
	return completion.NewEngine(intellisense.NewProvider(e.Filters, e.Options))
}

// Search returns the records matched by q, windowed by page.
func (e *Engine) Search(ctx context.Context, q string, records []interface{}, page Page) ([]interface{}, error) {
	if e == nil || e.Compiler == nil {
		return nil, fmt.Errorf("compiler is not configured")
	}
	window := limiter.Config{Limit: page.Limit, Offset: page.Offset, Tail: page.Tail}
	if err := window.Validate(); err != nil {
		return nil, err
	}
	m, err := e.Compiler.Compile(e.Parse(q))
	if err != nil {
		return nil, err
	}
	lgr := e.Logger
	if ctxLgr := logger.FromContext(ctx); ctxLgr != logger.GetNoopLogger() {
		lgr = *ctxLgr
	}

	out := make([]interface{}, 0, len(records))
	for i, r := range records {
		ok, err := m.Match(r)
		if err != nil {
			lgr.V(1).Info("skipping record", "index", i, "error", err.Error())
			continue
		}
		if ok {
			out = append(out, r)
		}
	}
	return limiter.Apply(window, out), nil
}

type celCompiler struct {
	ev *search.Evaluator
}

func (c celCompiler) Compile(res query.Result) (Matcher, error) {
	p, err := c.ev.Compile(res)
	if err != nil {
		return nil, err
	}
	return p, nil
}
