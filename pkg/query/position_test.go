package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	keys := []string{"status", "type", "group"}
	tests := []struct {
		word      string
		wantState State
		wantKey   string
	}{
		{word: "", wantState: AwaitingKey},
		{word: "sta", wantState: AwaitingKey},
		{word: "status", wantState: AwaitingKey},
		{word: "status:", wantState: AwaitingValue, wantKey: "status"},
		{word: "type:", wantState: AwaitingValue, wantKey: "type"},
		{word: "status:active", wantState: AwaitingKey},
		{word: "stat:", wantState: AwaitingKey},
		{word: "xstatus:", wantState: AwaitingKey},
		{word: "free", wantState: AwaitingKey},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got := Classify(tt.word, keys)
			assert.Equal(t, tt.wantState, got.State)
			assert.Equal(t, tt.wantKey, got.Key)
			assert.Equal(t, tt.word, got.Word)
		})
	}
}

func TestClassifyAt(t *testing.T) {
	keys := []string{"status"}

	p := ClassifyAt("foo ", 4, keys)
	assert.Equal(t, AwaitingKey, p.State)
	assert.Equal(t, "", p.Word)
	assert.True(t, p.ShowsKeys())

	p = ClassifyAt("status:", 7, keys)
	assert.Equal(t, AwaitingValue, p.State)
	assert.Equal(t, "status", p.Key)
	assert.False(t, p.ShowsKeys())
	assert.True(t, p.ShowsValuesFor("status"))
	assert.False(t, p.ShowsValuesFor("type"))

	p = ClassifyAt("status:", CaretUnknown, keys)
	assert.Equal(t, AwaitingKey, p.State)
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "awaiting-key", Position{}.String())
	assert.Equal(t, "awaiting-value status", Position{State: AwaitingValue, Key: "status"}.String())
}
