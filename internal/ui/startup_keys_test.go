package ui

import (
	"reflect"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestParseTokenSegments(t *testing.T) {
	tests := []struct {
		in   string
		want []tokenSegment
	}{
		{"sta", []tokenSegment{{text: "sta"}}},
		{"<Tab>", []tokenSegment{{text: "<Tab>", isKey: true}}},
		{"sta<Tab>x", []tokenSegment{{text: "sta"}, {text: "<Tab>", isKey: true}, {text: "x"}}},
		{"a<b", []tokenSegment{{text: "a"}, {text: "<b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseTokenSegments(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("parseTokenSegments(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeyMsgsFromToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"<Tab>", "tab"},
		{"<CR>", "enter"},
		{"<esc>", "esc"},
		{"<Down>", "down"},
		{"<C-n>", "ctrl+n"},
	}
	for _, tt := range tests {
		msgs, ok := keyMsgsFromToken(tt.token)
		if !ok || len(msgs) != 1 {
			t.Fatalf("keyMsgsFromToken(%q) = %v, %v", tt.token, msgs, ok)
		}
		if got := msgs[0].String(); got != tt.want {
			t.Fatalf("keyMsgsFromToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
	if _, ok := keyMsgsFromToken("<Nope>"); ok {
		t.Fatal("expected unknown token to be rejected")
	}
	if _, ok := keyMsgsFromToken("plain"); ok {
		t.Fatal("expected literal text to be rejected")
	}
}

func TestApplyStartupKeysUnknownTokenIsLiteral(t *testing.T) {
	m := newTestModel(t)
	ApplyStartupKeys(m, []string{"<Nope>"})
	if got := m.Input.Value(); got != "<Nope>" {
		t.Fatalf("value = %q", got)
	}
}

func TestApplyStartupKeysBackslashIsLiteral(t *testing.T) {
	m := newTestModel(t)
	ApplyStartupKeys(m, []string{`\<Tab>`})
	if got := m.Input.Value(); got != "<Tab>" {
		t.Fatalf("value = %q", got)
	}
}

func TestApplyStartupKeysFullFlow(t *testing.T) {
	m := newTestModel(t)
	ApplyStartupKeys(m, []string{"ty<Tab>", "<Down><CR>", "bob"})
	if got := m.Input.Value(); got != "type:admin bob" {
		t.Fatalf("value = %q", got)
	}
	res := m.Result()
	if got := res.Filters["type"]; !reflect.DeepEqual(got, []string{"admin"}) {
		t.Fatalf("type = %v", got)
	}
	if res.Remaining != "bob" {
		t.Fatalf("remaining = %q", res.Remaining)
	}
	if m.Submitted {
		t.Fatal("selection must not submit")
	}
}

func TestApplyStartupKeysNilModel(t *testing.T) {
	ApplyStartupKeys(nil, []string{"<Tab>"})
	var _ tea.Model = newTestModel(t)
}
