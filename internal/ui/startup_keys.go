package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys feeds simulated keypresses to m. Each entry may mix Vim-like
// key tokens ("<Tab>", "<Down>", "<CR>") with literal text ("sta<Tab>"). A leading
// backslash makes the whole entry literal. "<Blur>" and "<Focus>" send terminal
// focus events.
func ApplyStartupKeys(m *Model, keys []string) {
	if m == nil {
		return
	}
	for _, raw := range keys {
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, `\`) {
			typeText(m, strings.TrimPrefix(raw, `\`))
			continue
		}
		for _, seg := range parseTokenSegments(raw) {
			if !seg.isKey {
				typeText(m, seg.text)
				continue
			}
			if msg, ok := focusMsgFromToken(seg.text); ok {
				m.Update(msg)
				continue
			}
			msgs, ok := keyMsgsFromToken(seg.text)
			if !ok {
				typeText(m, seg.text)
				continue
			}
			for _, msg := range msgs {
				m.Update(msg)
			}
		}
	}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

type tokenSegment struct {
	text  string
	isKey bool
}

// parseTokenSegments splits "<Tab>sta<Down>" into key and literal segments.
// An unterminated "<" is literal.
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	rest := token
	for rest != "" {
		open := strings.Index(rest, "<")
		if open == -1 {
			segments = append(segments, tokenSegment{text: rest})
			break
		}
		if open > 0 {
			segments = append(segments, tokenSegment{text: rest[:open]})
		}
		closing := strings.Index(rest[open:], ">")
		if closing == -1 {
			segments = append(segments, tokenSegment{text: rest[open:]})
			break
		}
		segments = append(segments, tokenSegment{text: rest[open : open+closing+1], isKey: true})
		rest = rest[open+closing+1:]
	}
	return segments
}

// keyMsgsFromToken maps a "<...>" token to key messages.
func keyMsgsFromToken(token string) ([]tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return nil, false
	}
	inner := strings.ToLower(token[1 : len(token)-1])
	switch inner {
	case "esc", "escape", "c-[":
		return []tea.KeyPressMsg{{Code: tea.KeyEscape}}, true
	case "cr", "enter", "return":
		return []tea.KeyPressMsg{{Code: tea.KeyEnter}}, true
	case "tab":
		return []tea.KeyPressMsg{{Code: tea.KeyTab}}, true
	case "space":
		return []tea.KeyPressMsg{{Code: ' ', Text: " "}}, true
	case "bs", "backspace":
		return []tea.KeyPressMsg{{Code: tea.KeyBackspace}}, true
	case "left":
		return []tea.KeyPressMsg{{Code: tea.KeyLeft}}, true
	case "right":
		return []tea.KeyPressMsg{{Code: tea.KeyRight}}, true
	case "up":
		return []tea.KeyPressMsg{{Code: tea.KeyUp}}, true
	case "down":
		return []tea.KeyPressMsg{{Code: tea.KeyDown}}, true
	case "home":
		return []tea.KeyPressMsg{{Code: tea.KeyHome}}, true
	case "end":
		return []tea.KeyPressMsg{{Code: tea.KeyEnd}}, true
	case "c-n":
		return []tea.KeyPressMsg{{Code: 'n', Mod: tea.ModCtrl}}, true
	case "c-p":
		return []tea.KeyPressMsg{{Code: 'p', Mod: tea.ModCtrl}}, true
	case "c-c":
		return []tea.KeyPressMsg{{Code: 'c', Mod: tea.ModCtrl}}, true
	}
	return nil, false
}

func focusMsgFromToken(token string) (tea.Msg, bool) {
	switch strings.ToLower(token) {
	case "<blur>":
		return tea.BlurMsg{}, true
	case "<focus>":
		return tea.FocusMsg{}, true
	}
	return nil, false
}
