// Package search applies a parsed advq query to a list of records by compiling it
// into a CEL program.
//
// Values given for one key are alternatives; distinct keys must all match. Each
// free-text word must occur, case-insensitively, somewhere in the record's values.
package search

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/advq/pkg/logger"
	"github.com/oakwood-commons/advq/pkg/query"
)

// Evaluator compiles parsed queries against a fixed set of filter keys.
type Evaluator struct {
	env  *cel.Env
	keys []string
}

// Program is a compiled query.
type Program struct {
	expr string
	prg  cel.Program
}

// NewEvaluator creates an evaluator recognising keys.
func NewEvaluator(keys []string) (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("_", cel.DynType),
		cel.Variable("text", cel.StringType),
		celext.Strings(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env, keys: append([]string(nil), keys...)}, nil
}

// Expression renders res as CEL source. An unconstrained query yields "true".
func (e *Evaluator) Expression(res query.Result) string {
	var clauses []string
	for _, key := range e.keys {
		values := res.Filters[key]
		if len(values) == 0 {
			continue
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = strconv.Quote(v)
		}
		k := strconv.Quote(key)
		list := "[" + strings.Join(quoted, ", ") + "]"
		clauses = append(clauses, fmt.Sprintf(
			"(type(_) == map && %s in _ && (type(_[%s]) == list ? _[%s].exists(x, string(x) in %s) : string(_[%s]) in %s))",
			k, k, k, list, k, list))
	}
	for _, word := range strings.Fields(res.Remaining) {
		clauses = append(clauses, fmt.Sprintf("text.contains(%s)", strconv.Quote(strings.ToLower(word))))
	}
	if len(clauses) == 0 {
		return "true"
	}
	return strings.Join(clauses, " && ")
}

// Compile turns a parse result into a Program.
func (e *Evaluator) Compile(res query.Result) (*Program, error) {
	expr := e.Expression(res)
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// Expression returns the CEL source of the program.
func (p *Program) Expression() string {
	return p.expr
}

// Match reports whether record satisfies the query. Scalar values are compared
// in their string form, so age:30 matches 30 and active:true matches true. A
// null field never matches.
func (p *Program) Match(record interface{}) (bool, error) {
	out, _, err := p.prg.Eval(map[string]interface{}{
		"_":    normalize(record),
		"text": Flatten(record),
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eval error: expected bool, got %T", out.Value())
	}
	return b, nil
}

// Filter returns the records matched by p, in input order. Records that fail to
// evaluate are skipped and logged.
func Filter(ctx context.Context, records []interface{}, p *Program) []interface{} {
	lgr := logger.FromContext(ctx)
	out := make([]interface{}, 0, len(records))
	for i, r := range records {
		ok, err := p.Match(r)
		if err != nil {
			lgr.V(1).Info("skipping record", "index", i, "error", err.Error())
			continue
		}
		if ok {
			out = append(out, r)
		}
	}
	return out
}

// Flatten returns the lower-cased scalar values of record joined by newlines.
// Map entries are visited in key order.
func Flatten(record interface{}) string {
	var parts []string
	var walk func(v interface{})
	walk = func(v interface{}) {
		switch t := v.(type) {
		case nil:
		case map[string]interface{}:
			keys := make([]string, 0, len(t))
			for k := range t {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(t[k])
			}
		case []interface{}:
			for _, e := range t {
				walk(e)
			}
		default:
			parts = append(parts, strings.ToLower(scalarString(t)))
		}
	}
	walk(record)
	return strings.Join(parts, "\n")
}

// normalize copies record with every scalar leaf replaced by its string form.
// Null map entries and list elements are dropped.
func normalize(record interface{}) interface{} {
	switch t := record.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, v := range t {
			if v == nil {
				continue
			}
			out[k] = normalize(v)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, e := range t {
			if e == nil {
				continue
			}
			out = append(out, normalize(e))
		}
		return out
	default:
		return scalarString(t)
	}
}

func scalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}
