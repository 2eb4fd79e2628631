package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRecords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []interface{}
	}{
		{
			name:  "json array",
			input: `[{"name":"a"},{"name":"b"}]`,
			want:  []interface{}{map[string]interface{}{"name": "a"}, map[string]interface{}{"name": "b"}},
		},
		{
			name:  "indented json array",
			input: "[\n  {\"name\": \"a\"},\n  {\"name\": \"b\"}\n]",
			want:  []interface{}{map[string]interface{}{"name": "a"}, map[string]interface{}{"name": "b"}},
		},
		{
			name:  "json object",
			input: `{"name":"a","status":"active"}`,
			want:  []interface{}{map[string]interface{}{"name": "a", "status": "active"}},
		},
		{
			name:  "ndjson",
			input: "{\"name\":\"a\"}\n{\"name\":\"b\"}\nnot json",
			want:  []interface{}{map[string]interface{}{"name": "a"}, map[string]interface{}{"name": "b"}, "not json"},
		},
		{
			name:  "yaml list",
			input: "- name: a\n  age: 3\n- name: b\n",
			want:  []interface{}{map[string]interface{}{"name": "a", "age": 3}, map[string]interface{}{"name": "b"}},
		},
		{
			name:  "multi document yaml",
			input: "---\nname: a\n---\nname: b\n",
			want:  []interface{}{map[string]interface{}{"name": "a"}, map[string]interface{}{"name": "b"}},
		},
		{
			name:  "toml array of tables",
			input: "[[records]]\nname = \"a\"\n\n[[records]]\nname = \"b\"\n",
			want:  []interface{}{map[string]interface{}{"name": "a"}, map[string]interface{}{"name": "b"}},
		},
		{
			name:  "wrapped json list",
			input: `{"items":[{"name":"a"}]}`,
			want:  []interface{}{map[string]interface{}{"name": "a"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadRecords(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadRecordsErrors(t *testing.T) {
	_, err := LoadRecords("   ")
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = LoadRecords(`{"broken":`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"a"}]`), 0o600))

	got, err := LoadFile(path, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = LoadFile("-", strings.NewReader("- x\n- y\n"))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"x", "y"}, got)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
}

func TestFormatHeuristics(t *testing.T) {
	assert.True(t, isLikelyTOML("[server]\nport = 1"))
	assert.True(t, isLikelyTOML("a = 1\nb = 2"))
	assert.False(t, isLikelyTOML("[1, 2, 3]"))
	assert.False(t, isLikelyTOML("name: a"))

	assert.True(t, isLikelyNDJSON([]string{"{}", "{}"}))
	assert.False(t, isLikelyNDJSON([]string{"{}"}))
	assert.False(t, isLikelyNDJSON([]string{"- a", "- b", "{}"}))
}
