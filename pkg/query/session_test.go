package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFlow(t *testing.T) {
	s := NewSession([]string{"status", "type"})
	assert.Equal(t, "", s.Value())
	assert.Equal(t, 0, s.Caret())
	assert.Equal(t, AwaitingKey, s.Position().State)

	s.SetValue("find sta")
	assert.Equal(t, 8, s.Caret())
	assert.Equal(t, "sta", s.Word())

	edit := s.SelectKey("status")
	require.Equal(t, Edit{Value: "find status:", Caret: 12}, edit)
	assert.Equal(t, edit.Value, s.Value())
	assert.Equal(t, edit.Caret, s.Caret())
	assert.Equal(t, Position{State: AwaitingValue, Key: "status", Word: "status:"}, s.Position())

	edit = s.SelectValue("active")
	require.Equal(t, Edit{Value: "find status:active ", Caret: 19}, edit)
	assert.Equal(t, AwaitingKey, s.Position().State)
	assert.Equal(t, "", s.Word())

	res := s.Parse()
	assert.Equal(t, []string{"active"}, res.Filters["status"])
	assert.Equal(t, []string{}, res.Filters["type"])
	assert.Equal(t, "find", res.Remaining)
}

func TestSessionSelectValueWithoutPendingKey(t *testing.T) {
	s := NewSession([]string{"status"})
	s.SetValue("plain")
	edit := s.SelectValue("active")
	assert.Equal(t, Edit{Value: "plain", Caret: 5}, edit)
	assert.Equal(t, "plain", s.Value())
}

func TestSessionUnknownCaret(t *testing.T) {
	s := NewSession([]string{"status"})
	s.Set("status:", CaretUnknown)
	assert.Equal(t, "", s.Word())
	assert.Equal(t, AwaitingKey, s.Position().State)
}

func TestSessionKeysAreCopied(t *testing.T) {
	keys := []string{"status"}
	s := NewSession(keys)
	keys[0] = "changed"
	assert.Equal(t, []string{"status"}, s.Keys())
	got := s.Keys()
	got[0] = "mutated"
	assert.Equal(t, []string{"status"}, s.Keys())
}
