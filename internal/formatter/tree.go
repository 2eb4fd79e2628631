// Package formatter renders query results, filter sets and matched records as
// ASCII trees.
package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/advq/pkg/filters"
	"github.com/oakwood-commons/advq/pkg/query"
)

const defaultMaxArrayInline = 3

// TreeOptions controls record tree output.
type TreeOptions struct {
	// MaxDepth limits nesting (0 = unlimited).
	MaxDepth int
	// MaxArrayInline is the largest scalar array shown inline (default 3).
	MaxArrayInline int
	// MaxStringLen truncates scalar values to this display width (0 = unlimited).
	MaxStringLen int
}

// ResultTree renders a parse result: one branch per filter key in keys order,
// followed by the free text.
func ResultTree(keys []string, res query.Result) string {
	tree := treeprint.NewWithRoot("query")
	for _, k := range keys {
		values := res.Filters.Values(k)
		if len(values) == 0 {
			tree.AddNode(k + ": -")
			continue
		}
		branch := tree.AddBranch(k)
		for _, v := range values {
			branch.AddNode(v)
		}
	}
	if res.Remaining == "" {
		tree.AddNode("text: -")
	} else {
		tree.AddNode("text: " + strconv.Quote(res.Remaining))
	}
	return tree.String()
}

// FiltersTree renders a filter set as key branches with their options.
func FiltersTree(set *filters.Set) string {
	tree := treeprint.NewWithRoot("filters")
	for _, d := range set.Definitions() {
		branch := tree.AddBranch(labelled(d.Key, d.Label))
		for _, o := range d.Options {
			branch.AddNode(labelled(o.Value, o.Label))
		}
	}
	return tree.String()
}

func labelled(value, label string) string {
	if label == "" || label == value {
		return value
	}
	return fmt.Sprintf("%s (%s)", value, label)
}

// RecordsTree renders matched records, one indexed branch each.
func RecordsTree(records []interface{}, opts TreeOptions) string {
	if opts.MaxArrayInline == 0 {
		opts.MaxArrayInline = defaultMaxArrayInline
	}
	tree := treeprint.NewWithRoot(fmt.Sprintf("records (%d)", len(records)))
	for i, r := range records {
		addValue(tree, fmt.Sprintf("[%d]", i), r, opts, 0)
	}
	return tree.String()
}

func addValue(branch treeprint.Tree, key string, val interface{}, opts TreeOptions, depth int) {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		branch.AddNode(key + ": ...")
		return
	}

	switch v := val.(type) {
	case map[string]interface{}:
		if len(v) == 0 {
			branch.AddNode(key + ": {}")
			return
		}
		child := branch.AddBranch(key)
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			addValue(child, k, v[k], opts, depth+1)
		}
	case []interface{}:
		switch {
		case len(v) == 0:
			branch.AddNode(key + ": []")
		case isScalarArray(v) && len(v) <= opts.MaxArrayInline:
			parts := make([]string, len(v))
			for i, e := range v {
				parts[i] = scalar(e, opts)
			}
			branch.AddNode(key + ": [" + strings.Join(parts, ", ") + "]")
		case isScalarArray(v):
			branch.AddNode(fmt.Sprintf("%s: [%d items]", key, len(v)))
		default:
			child := branch.AddBranch(key)
			for i, e := range v {
				addValue(child, fmt.Sprintf("[%d]", i), e, opts, depth+1)
			}
		}
	default:
		branch.AddNode(key + ": " + scalar(v, opts))
	}
}

func isScalarArray(arr []interface{}) bool {
	for _, elem := range arr {
		switch elem.(type) {
		case map[string]interface{}, []interface{}:
			return false
		}
	}
	return true
}

func scalar(v interface{}, opts TreeOptions) string {
	var s string
	switch val := v.(type) {
	case nil:
		s = "null"
	case string:
		s = val
	case float64:
		// clean integers print without a fraction
		if val == float64(int64(val)) {
			s = strconv.FormatInt(int64(val), 10)
		} else {
			s = strconv.FormatFloat(val, 'g', -1, 64)
		}
	default:
		s = fmt.Sprint(val)
	}
	if opts.MaxStringLen > 0 && runewidth.StringWidth(s) > opts.MaxStringLen {
		return runewidth.Truncate(s, opts.MaxStringLen, "...")
	}
	return s
}
