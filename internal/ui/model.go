package ui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/advq/internal/completion"
	"github.com/oakwood-commons/advq/pkg/filters"
	"github.com/oakwood-commons/advq/pkg/query"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// noSelection means no dropdown row is highlighted.
	noSelection = -1
)

// Model is the advanced search input: a single-line text field with a dropdown
// of filter keys or values for the word under the caret.
type Model struct {
	Input       textinput.Model
	Session     *query.Session
	Engine      *completion.CompletionEngine
	Filters     *filters.Set
	Suggestions completion.Suggestions
	Selected    int

	Focused   bool
	Submitted bool
	Quitting  bool

	Theme   Theme
	NoColor bool
	Width   int
	Height  int

	// LastKey is the last key string handled, shown by the debug status line.
	LastKey string
	Debug   bool

	log    logr.Logger
	styles styles
}

// NewModel builds a focused model over set using engine for suggestions.
func NewModel(set *filters.Set, engine *completion.CompletionEngine, log logr.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "type a filter key or free text"
	ti.CharLimit = 500
	ti.SetWidth(defaultWidth - 4)
	ti.Prompt = ""
	ti.Focus()

	m := Model{
		Input:    ti,
		Session:  query.NewSession(set.Keys()),
		Engine:   engine,
		Filters:  set,
		Selected: noSelection,
		Focused:  true,
		Theme:    ThemePresets["dark"],
		Width:    defaultWidth,
		Height:   defaultHeight,
		log:      log,
	}
	m.ApplyColorScheme()
	m.sync()
	return m
}

// SetQuery replaces the input text and places the caret at its end.
func (m *Model) SetQuery(value string) {
	m.Input.SetValue(value)
	m.Input.CursorEnd()
	m.sync()
}

// ApplyColorScheme rebuilds styles after Theme or NoColor change.
func (m *Model) ApplyColorScheme() {
	m.styles = newStyles(m.Theme, m.NoColor)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Input.SetWidth(max(m.Width-4, 10))
		return m, nil
	case tea.FocusMsg:
		m.focus()
		return m, nil
	case tea.BlurMsg:
		m.blur()
		return m, nil
	case tea.KeyPressMsg:
		key := msg.String()
		m.LastKey = key
		switch key {
		case "ctrl+c", "esc":
			m.Quitting = true
			return m, tea.Quit
		case "up", "ctrl+p":
			m.move(-1)
			return m, nil
		case "down", "ctrl+n":
			m.move(1)
			return m, nil
		case "tab":
			if m.visible() {
				idx := max(m.Selected, 0)
				m.accept(m.Suggestions.Items[idx])
			}
			return m, nil
		case "enter":
			if m.visible() && m.Selected >= 0 {
				m.accept(m.Suggestions.Items[m.Selected])
				return m, nil
			}
			m.Submitted = true
			m.log.V(1).Info("query submitted", "query", m.Session.Value())
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.sync()
	return m, cmd
}

// sync copies the textinput state into the session and recomputes suggestions.
func (m *Model) sync() {
	prev := m.Session.Position()
	m.Session.Set(m.Input.Value(), m.Input.Position())
	m.Suggestions = m.Engine.Suggest(m.Session)
	if m.Suggestions.Position != prev || m.Selected >= len(m.Suggestions.Items) {
		m.Selected = noSelection
	}
}

// accept inserts c into the query and moves the caret past the inserted text.
func (m *Model) accept(c completion.Completion) {
	edit := m.Engine.Apply(m.Session, c)
	m.log.V(1).Info("completion applied", "kind", c.Kind.String(), "text", c.Text, "query", edit.Value, "caret", edit.Caret)
	m.Input.SetValue(edit.Value)
	m.Input.SetCursor(edit.Caret)
	m.Selected = noSelection
	m.sync()
}

func (m *Model) move(delta int) {
	if !m.visible() {
		return
	}
	n := len(m.Suggestions.Items)
	switch {
	case m.Selected == noSelection && delta < 0:
		m.Selected = n - 1
	case m.Selected == noSelection:
		m.Selected = 0
	default:
		m.Selected = (m.Selected + delta + n) % n
	}
}

func (m *Model) focus() {
	m.Focused = true
	m.Input.Focus()
	m.sync()
}

func (m *Model) blur() {
	m.Focused = false
	m.Input.Blur()
	m.Selected = noSelection
}

// visible reports whether the dropdown is open.
func (m *Model) visible() bool {
	return m.Focused && !m.Suggestions.Empty()
}

// Result returns the parse of the current query.
func (m *Model) Result() query.Result {
	return m.Session.Parse()
}
