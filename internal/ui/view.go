package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/advq/internal/completion"
	"github.com/oakwood-commons/advq/internal/limiter"
)

// maxDropdownRows caps the rendered dropdown; the highlight scrolls within it.
const maxDropdownRows = 8

// View implements tea.Model.
func (m *Model) View() tea.View {
	if m.Quitting || m.Submitted {
		return tea.NewView("")
	}
	v := tea.NewView(m.Render())
	v.ReportFocus = true
	return v
}

// Render draws the input line, the dropdown when open, and the status line.
func (m *Model) Render() string {
	var b strings.Builder
	b.WriteString(m.styles.prompt.Render("search> "))
	b.WriteString(m.Input.View())
	b.WriteString("\n")
	if m.visible() {
		b.WriteString(m.renderDropdown())
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m *Model) renderDropdown() string {
	items := m.Suggestions.Items
	first, last := dropdownWindow(len(items), m.Selected, maxDropdownRows)

	labelW, detailW := 0, 0
	for _, it := range items[first:last] {
		labelW = max(labelW, runewidth.StringWidth(it.Display))
		detailW = max(detailW, runewidth.StringWidth(it.Detail))
	}
	inner := labelW + 2 + detailW
	if limit := m.Width - 4; limit > 0 && inner > limit {
		inner = limit
	}

	rows := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		it := items[i]
		line := runewidth.FillRight(it.Display, labelW) + "  " + runewidth.FillLeft(it.Detail, detailW)
		line = runewidth.Truncate(line, inner, "…")
		line = runewidth.FillRight(line, inner)
		switch {
		case i == m.Selected:
			line = m.styles.selected.Render(line)
		case it.Kind == completion.CompletionFilterValue:
			line = m.styles.value.Render(line)
		default:
			line = m.styles.key.Render(line)
		}
		rows = append(rows, line)
	}
	return m.styles.border.Render(strings.Join(rows, "\n"))
}

// dropdownWindow returns the [first, last) range of rows to draw so that the
// selected row stays visible.
func dropdownWindow(n, selected, limit int) (int, int) {
	first := 0
	if n > limit && selected >= limit {
		first = selected - limit + 1
	}
	return limiter.Config{Offset: first, Limit: limit}.Window(n)
}

func (m *Model) renderStatus() string {
	res := m.Session.Parse()
	plain := []string{m.Session.Position().String()}
	styled := []string{m.styles.status.Render(plain[0])}
	add := func(text string, st func(...string) string) {
		plain = append(plain, text)
		styled = append(styled, st(text))
	}
	if active := res.Filters.Active(); len(active) > 0 {
		fs := make([]string, 0, len(active))
		for _, k := range active {
			fs = append(fs, k+"="+strings.Join(res.Filters[k], ","))
		}
		add("filters: "+strings.Join(fs, " "), m.styles.filter.Render)
	}
	if res.Remaining != "" {
		add(fmt.Sprintf("text: %q", res.Remaining), m.styles.status.Render)
	}
	if m.Debug && m.LastKey != "" {
		add("key: "+m.LastKey, m.styles.detail.Render)
	}
	line := strings.Join(plain, " | ")
	if m.Width > 0 && runewidth.StringWidth(line) > m.Width {
		return m.styles.status.Render(runewidth.Truncate(line, m.Width, "…"))
	}
	return strings.Join(styled, m.styles.status.Render(" | "))
}
