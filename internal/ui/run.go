package ui

import (
	"context"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/oakwood-commons/advq/internal/completion"
	"github.com/oakwood-commons/advq/pkg/filters"
	"github.com/oakwood-commons/advq/pkg/query"
)

// Config configures an interactive session or a snapshot.
type Config struct {
	Filters     *filters.Set
	Completion  completion.Options
	Query       string // Initial query; the caret starts at its end
	Placeholder string // Shown while the input is empty
	Width       int    // 0 auto-detects (falls back to 80)
	Height      int    // 0 auto-detects (falls back to 24)
	Theme       string
	NoColor     bool
	Debug       bool
	StartKeys   []string
	Logger      logr.Logger
	Unfocused   bool // Start blurred, dropdown closed
	Interactive bool // Size detection reads the real terminal
}

// Outcome is what the session ended with.
type Outcome struct {
	Query     string       `json:"query" yaml:"query"`
	Result    query.Result `json:"result" yaml:"result"`
	Submitted bool         `json:"submitted" yaml:"submitted"`
}

// NewModelFromConfig builds a model with cfg applied, start keys included.
func NewModelFromConfig(cfg Config) (*Model, error) {
	th, err := GetTheme(cfg.Theme)
	if err != nil {
		return nil, err
	}
	set := cfg.Filters
	if set == nil {
		if set, err = filters.Default(); err != nil {
			return nil, err
		}
	}
	engine := completion.NewEngine(completion.NewFilterProvider(set, cfg.Completion))
	m := NewModel(set, engine, cfg.Logger)
	m.Theme = th
	m.NoColor = cfg.NoColor
	m.Debug = cfg.Debug
	if cfg.Placeholder != "" {
		m.Input.Placeholder = cfg.Placeholder
	}
	m.ApplyColorScheme()

	w, h := resolveSize(cfg.Width, cfg.Height, cfg.Interactive)
	m.Update(tea.WindowSizeMsg{Width: w, Height: h})

	if cfg.Query != "" {
		m.SetQuery(cfg.Query)
	}
	if cfg.Unfocused {
		m.blur()
	}
	ApplyStartupKeys(&m, cfg.StartKeys)
	return &m, nil
}

// RenderSnapshot renders a single frame without a terminal.
func RenderSnapshot(cfg Config) (string, error) {
	m, err := NewModelFromConfig(cfg)
	if err != nil {
		return "", err
	}
	return padSnapshotHeight(m.Render(), m.Height), nil
}

// Run starts the Bubble Tea program and blocks until the user submits or quits.
func Run(ctx context.Context, cfg Config, opts ...tea.ProgramOption) (Outcome, error) {
	cfg.Interactive = true
	m, err := NewModelFromConfig(cfg)
	if err != nil {
		return Outcome{}, err
	}
	if cfg.Width > 0 || cfg.Height > 0 {
		opts = append(opts, tea.WithWindowSize(m.Width, m.Height))
	}
	opts = append(opts, tea.WithContext(ctx))

	final, err := tea.NewProgram(m, opts...).Run()
	if fm, ok := final.(*Model); ok && fm != nil {
		m = fm
	}
	out := Outcome{
		Query:     m.Session.Value(),
		Result:    m.Result(),
		Submitted: m.Submitted,
	}
	return out, err
}

func resolveSize(width, height int, detect bool) (int, int) {
	if detect && (width <= 0 || height <= 0) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

func padSnapshotHeight(view string, height int) string {
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
