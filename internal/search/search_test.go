package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/advq/pkg/query"
)

var keys = []string{"status", "type", "group"}

func records() []interface{} {
	return []interface{}{
		map[string]interface{}{"name": "alice", "status": "active", "type": "admin", "bio": "Loves Go"},
		map[string]interface{}{"name": "bob", "status": "pending", "type": "user"},
		map[string]interface{}{"name": "carol", "status": "active", "type": "user", "group": []interface{}{"NL", "DE"}},
		"scalar string record",
		map[string]interface{}{"name": "dave", "status": 3},
	}
}

func names(rs []interface{}) []string {
	var out []string
	for _, r := range rs {
		if m, ok := r.(map[string]interface{}); ok {
			out = append(out, m["name"].(string))
			continue
		}
		out = append(out, r.(string))
	}
	return out
}

func TestFilter(t *testing.T) {
	ev, err := NewEvaluator(keys)
	require.NoError(t, err)

	tests := []struct {
		query string
		want  []string
	}{
		{query: "status:active", want: []string{"alice", "carol"}},
		{query: "status:active status:pending type:user", want: []string{"bob", "carol"}},
		{query: "go", want: []string{"alice"}},
		{query: "status:active CAROL", want: []string{"carol"}},
		{query: "group:DE", want: []string{"carol"}},
		{query: "status:3", want: []string{"dave"}},
		{query: "record", want: []string{"scalar string record"}},
		{query: "", want: []string{"alice", "bob", "carol", "scalar string record", "dave"}},
		{query: "status:missing", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			prg, err := ev.Compile(query.Parse(tt.query, keys))
			require.NoError(t, err)
			got := Filter(context.Background(), records(), prg)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestExpression(t *testing.T) {
	ev, err := NewEvaluator([]string{"status"})
	require.NoError(t, err)

	assert.Equal(t, "true", ev.Expression(query.Parse("", []string{"status"})))

	got := ev.Expression(query.Parse(`status:a status:"b Foo`, []string{"status"}))
	want := `(type(_) == map && "status" in _ && (type(_["status"]) == list ? _["status"].exists(x, string(x) in ["a", "\"b"]) : string(_["status"]) in ["a", "\"b"])) && text.contains("foo")`
	assert.Equal(t, want, got)

	prg, err := ev.Compile(query.Parse("status:a", []string{"status"}))
	require.NoError(t, err)
	assert.Contains(t, prg.Expression(), `"status" in _`)
}

func TestMatchError(t *testing.T) {
	ev, err := NewEvaluator([]string{"status"})
	require.NoError(t, err)
	prg, err := ev.Compile(query.Parse("status:a", []string{"status"}))
	require.NoError(t, err)

	_, err = prg.Match(map[string]interface{}{"status": map[string]interface{}{"nested": true}})
	require.Error(t, err)

	got := Filter(context.Background(), []interface{}{map[string]interface{}{"status": map[string]interface{}{}}}, prg)
	assert.Empty(t, got)
}

func TestMatchTypedFields(t *testing.T) {
	ev, err := NewEvaluator([]string{"age", "active", "tags", "name", "score"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		query  string
		record map[string]interface{}
		want   bool
	}{
		{name: "float64", query: "age:30", record: map[string]interface{}{"age": 30.0}, want: true},
		{name: "int", query: "age:30", record: map[string]interface{}{"age": 30}, want: true},
		{name: "int64", query: "age:30", record: map[string]interface{}{"age": int64(30)}, want: true},
		{name: "other number", query: "age:30", record: map[string]interface{}{"age": 31.0}, want: false},
		{name: "fraction", query: "score:1.5", record: map[string]interface{}{"score": 1.5}, want: true},
		{name: "bool true", query: "active:true", record: map[string]interface{}{"active": true}, want: true},
		{name: "bool false", query: "active:true", record: map[string]interface{}{"active": false}, want: false},
		{name: "null field", query: "name:x", record: map[string]interface{}{"name": nil}, want: false},
		{name: "null field with text", query: "x", record: map[string]interface{}{"name": nil, "tags": "x"}, want: true},
		{name: "mixed list number", query: "tags:1", record: map[string]interface{}{"tags": []interface{}{"a", 1.0, nil, true}}, want: true},
		{name: "mixed list bool", query: "tags:true", record: map[string]interface{}{"tags": []interface{}{"a", 1.0, nil, true}}, want: true},
		{name: "mixed list string", query: "tags:a", record: map[string]interface{}{"tags": []interface{}{"a", 1.0, nil, true}}, want: true},
		{name: "mixed list miss", query: "tags:b", record: map[string]interface{}{"tags": []interface{}{"a", 1.0, nil, true}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prg, err := ev.Compile(query.Parse(tt.query, []string{"age", "active", "tags", "name", "score"}))
			require.NoError(t, err)
			got, err := prg.Match(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchLeavesRecordUntouched(t *testing.T) {
	ev, err := NewEvaluator([]string{"age"})
	require.NoError(t, err)
	prg, err := ev.Compile(query.Parse("age:30", []string{"age"}))
	require.NoError(t, err)

	rec := map[string]interface{}{"age": 30.0, "name": nil}
	got := Filter(context.Background(), []interface{}{rec}, prg)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]interface{}{"age": 30.0, "name": nil}, got[0])
}

func TestFlatten(t *testing.T) {
	got := Flatten(map[string]interface{}{
		"b": []interface{}{"X", 2, 1e21, true},
		"a": "Hello",
		"c": nil,
	})
	assert.Equal(t, "hello\nx\n2\n1000000000000000000000\ntrue", got)
}
