package query

import (
	"strings"
	"testing"
)

func TestWordAt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		caret int
		want  string
	}{
		{name: "start of first word", value: "foo bar", caret: 0, want: "foo"},
		{name: "inside first word", value: "foo bar", caret: 2, want: "foo"},
		{name: "end of first word", value: "foo bar", caret: 3, want: "foo"},
		{name: "start of second word", value: "foo bar", caret: 4, want: "bar"},
		{name: "end of query", value: "foo bar", caret: 7, want: "bar"},
		{name: "after trailing space", value: "foo ", caret: 4, want: ""},
		{name: "pending key", value: "status:", caret: 7, want: "status:"},
		{name: "empty query", value: "", caret: 0, want: ""},
		{name: "between two spaces", value: "foo  bar", caret: 4, want: ""},
		{name: "unknown caret", value: "foo", caret: CaretUnknown, want: ""},
		{name: "caret past end", value: "foo", caret: 10, want: ""},
		{name: "multibyte runes", value: "héllo wörld", caret: 8, want: "wörld"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordAt(tt.value, tt.caret); got != tt.want {
				t.Errorf("WordAt(%q, %d) = %q; want %q", tt.value, tt.caret, got, tt.want)
			}
		})
	}
}

func TestWordSpanContainsCaret(t *testing.T) {
	inputs := []string{"", "a", "foo bar", " foo  bar ", "status:active x", "é ö ü"}
	for _, s := range inputs {
		runes := []rune(s)
		for c := 0; c <= len(runes); c++ {
			start, end := WordSpan(s, c)
			word := WordAt(s, c)
			if start > c || c > end {
				t.Fatalf("WordSpan(%q, %d) = [%d, %d) does not contain caret", s, c, start, end)
			}
			if word != string(runes[start:end]) {
				t.Fatalf("WordAt(%q, %d) = %q; span text is %q", s, c, word, string(runes[start:end]))
			}
			if strings.Contains(word, " ") {
				t.Fatalf("WordAt(%q, %d) = %q contains a space", s, c, word)
			}
			if word == "" {
				leftSpace := c == 0 || runes[c-1] == ' '
				rightSpace := c == len(runes) || runes[c] == ' '
				if !leftSpace || !rightSpace {
					t.Fatalf("WordAt(%q, %d) is empty but caret is next to a word", s, c)
				}
			}
		}
	}
}

func TestWordSpanOutOfRange(t *testing.T) {
	if s, e := WordSpan("foo", -1); s != 0 || e != 0 {
		t.Errorf("WordSpan unknown caret = (%d, %d); want (0, 0)", s, e)
	}
	if s, e := WordSpan("foo", 9); s != 3 || e != 3 {
		t.Errorf("WordSpan past end = (%d, %d); want (3, 3)", s, e)
	}
}
