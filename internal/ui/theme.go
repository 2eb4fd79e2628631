package ui

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors of the search input, its dropdown and the status line.
type Theme struct {
	Name       string
	PromptFG   color.Color // Prompt glyph
	KeyFG      color.Color // Filter key suggestions
	ValueFG    color.Color // Filter value suggestions
	DetailFG   color.Color // Right-hand detail column
	SelectedFG color.Color // Highlighted suggestion
	SelectedBG color.Color
	BorderFG   color.Color // Dropdown border
	StatusFG   color.Color // Status line
	FilterFG   color.Color // Recognised key:value tokens in the status line
}

// ThemePresets are the built-in themes selectable by name.
var ThemePresets = map[string]Theme{
	"dark": {
		Name:       "dark",
		PromptFG:   lipgloss.Color("81"),
		KeyFG:      lipgloss.Color("81"),
		ValueFG:    lipgloss.Color("114"),
		DetailFG:   lipgloss.Color("244"),
		SelectedFG: lipgloss.Color("15"),
		SelectedBG: lipgloss.Color("24"),
		BorderFG:   lipgloss.Color("238"),
		StatusFG:   lipgloss.Color("245"),
		FilterFG:   lipgloss.Color("221"),
	},
	"light": {
		Name:       "light",
		PromptFG:   lipgloss.Color("25"),
		KeyFG:      lipgloss.Color("25"),
		ValueFG:    lipgloss.Color("28"),
		DetailFG:   lipgloss.Color("242"),
		SelectedFG: lipgloss.Color("#ffffff"),
		SelectedBG: lipgloss.Color("31"),
		BorderFG:   lipgloss.Color("250"),
		StatusFG:   lipgloss.Color("240"),
		FilterFG:   lipgloss.Color("130"),
	},
	"mono": {Name: "mono"},
}

// ThemeNames returns the preset names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(ThemePresets))
	for n := range ThemePresets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// GetTheme looks a preset up by name. An empty name selects "dark".
func GetTheme(name string) (Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "dark"
	}
	th, ok := ThemePresets[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return th, nil
}

type styles struct {
	prompt   lipgloss.Style
	key      lipgloss.Style
	value    lipgloss.Style
	detail   lipgloss.Style
	selected lipgloss.Style
	border   lipgloss.Style
	status   lipgloss.Style
	filter   lipgloss.Style
}

// newStyles derives lipgloss styles from th. Without color only reverse video is
// used, so the highlighted row stays visible.
func newStyles(th Theme, noColor bool) styles {
	s := styles{
		prompt:   lipgloss.NewStyle(),
		key:      lipgloss.NewStyle(),
		value:    lipgloss.NewStyle(),
		detail:   lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().Reverse(true),
		border:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()),
		status:   lipgloss.NewStyle(),
		filter:   lipgloss.NewStyle(),
	}
	if noColor || th.Name == "mono" {
		return s
	}
	s.prompt = s.prompt.Foreground(th.PromptFG).Bold(true)
	s.key = s.key.Foreground(th.KeyFG)
	s.value = s.value.Foreground(th.ValueFG)
	s.detail = s.detail.Foreground(th.DetailFG)
	s.selected = lipgloss.NewStyle().Foreground(th.SelectedFG).Background(th.SelectedBG)
	s.border = s.border.BorderForeground(th.BorderFG)
	s.status = s.status.Foreground(th.StatusFG)
	s.filter = s.filter.Foreground(th.FilterFG).Bold(true)
	return s
}
