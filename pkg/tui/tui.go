// Package tui embeds the advq search input in host applications: a single-line
// query field with a filter dropdown, driven by Bubble Tea.
package tui

import (
	"context"
	"io"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/oakwood-commons/advq/internal/completion"
	"github.com/oakwood-commons/advq/internal/ui"
	"github.com/oakwood-commons/advq/pkg/filters"
	"github.com/oakwood-commons/advq/pkg/query"
)

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 120

// Config holds host-provided settings for the search input.
type Config struct {
	Filters     *filters.Set // nil uses the built-in demo filters
	Query       string       // Initial query
	Placeholder string
	Theme       string // dark (default), light or mono
	NoColor     bool
	Width       int // 0 detects the terminal width
	Height      int // 0 detects the terminal height
	PrefixMatch bool
	MaxResults  int // 0 = every item
	StartKeys   []string
	Debug       bool
	Logger      logr.Logger
}

// Result is what the user left the input with.
type Result struct {
	Query     string
	Filters   query.Filters
	Text      string
	Submitted bool // false when the user quit with esc or ctrl+c
}

// DefaultConfig returns the configuration the advq CLI starts with.
func DefaultConfig() Config {
	return Config{Theme: "dark", Logger: logr.Discard()}
}

// Themes lists the built-in theme names.
func Themes() []string {
	return ui.ThemeNames()
}

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS environment variable.
// If detection fails completely, returns (120, 24).
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 24
}

func (c Config) toUI() ui.Config {
	return ui.Config{
		Filters: c.Filters,
		Completion: completion.Options{
			PrefixMatch: c.PrefixMatch,
			MaxResults:  c.MaxResults,
		},
		Query:       c.Query,
		Placeholder: c.Placeholder,
		Width:       c.Width,
		Height:      c.Height,
		Theme:       c.Theme,
		NoColor:     c.NoColor,
		Debug:       c.Debug,
		StartKeys:   c.StartKeys,
		Logger:      c.Logger,
	}
}

// Run shows the search input and blocks until the user submits or quits.
// Host applications can pass tea.ProgramOption values to control IO.
func Run(ctx context.Context, cfg Config, opts ...tea.ProgramOption) (Result, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		w, h := DetectTerminalSize()
		if cfg.Width <= 0 {
			cfg.Width = w
		}
		if cfg.Height <= 0 {
			cfg.Height = h
		}
	}
	out, err := ui.Run(ctx, cfg.toUI(), opts...)
	return Result{
		Query:     out.Query,
		Filters:   out.Result.Filters,
		Text:      out.Result.Remaining,
		Submitted: out.Submitted,
	}, err
}

// RenderSnapshot renders one frame of the input after applying cfg.StartKeys,
// without a terminal.
func RenderSnapshot(cfg Config) (string, error) {
	return ui.RenderSnapshot(cfg.toUI())
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
