package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/oakwood-commons/advq/pkg/filters"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme != "dark" {
		t.Errorf("expected dark theme, got %q", cfg.Theme)
	}
	if cfg.Filters != nil {
		t.Error("expected nil filters to select the built-in set")
	}
}

func TestThemes(t *testing.T) {
	got := strings.Join(Themes(), ",")
	if got != "dark,light,mono" {
		t.Errorf("unexpected themes %q", got)
	}
}

func TestRenderSnapshot_ShowsValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Query = "status:"
	cfg.NoColor = true
	cfg.Width = 60
	cfg.Height = 12

	out, err := RenderSnapshot(cfg)
	if err != nil {
		t.Fatalf("RenderSnapshot: %v", err)
	}
	for _, want := range []string{"Inactive", "Active", "Pending", "awaiting-value status"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in snapshot:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n") + 1; n != 12 {
		t.Errorf("expected 12 lines, got %d", n)
	}
}

func TestRenderSnapshot_StartKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoColor = true
	cfg.PrefixMatch = true
	cfg.StartKeys = []string{"gr<Tab>", "<Down><Enter>", "hello"}

	out, err := RenderSnapshot(cfg)
	if err != nil {
		t.Fatalf("RenderSnapshot: %v", err)
	}
	if !strings.Contains(out, "filters: group=NL") {
		t.Errorf("expected group filter in status line:\n%s", out)
	}
	if !strings.Contains(out, `text: "hello"`) {
		t.Errorf("expected free text in status line:\n%s", out)
	}
}

func TestRenderSnapshot_CustomFilters(t *testing.T) {
	set, err := filters.New(filters.Definition{
		Key:     "env",
		Label:   "Environment",
		Options: []filters.Option{{Value: "prod", Label: "Production"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Filters = set
	cfg.NoColor = true
	cfg.MaxResults = 1
	cfg.Query = "env:"

	out, err := RenderSnapshot(cfg)
	if err != nil {
		t.Fatalf("RenderSnapshot: %v", err)
	}
	if !strings.Contains(out, "Production") {
		t.Errorf("expected custom option in snapshot:\n%s", out)
	}
}

func TestRenderSnapshot_UnknownTheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = "neon"
	if _, err := RenderSnapshot(cfg); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestDetectTerminalSize(t *testing.T) {
	t.Setenv("COLUMNS", "101")
	w, _ := DetectTerminalSize()
	if w <= 0 {
		t.Errorf("expected a positive width, got %d", w)
	}
}

func TestWithIO_ReturnsOptions(t *testing.T) {
	var in bytes.Buffer
	var out bytes.Buffer
	if got := len(WithIO(&in, &out)); got != 2 {
		t.Errorf("expected 2 options, got %d", got)
	}
	if got := len(WithIO(nil, nil)); got != 0 {
		t.Errorf("expected 0 options, got %d", got)
	}
}
