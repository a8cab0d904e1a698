package tui

import (
	"fmt"
	"strings"
)

func (m *Model) handleChecklistKey(key string) {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.entries) - 1
	case " ", "enter", "x":
		m.toggleEntry(m.cursor)
	case "a":
		for _, e := range m.entries {
			m.session.Enable(e.Code)
		}
		m.status = "all events enabled; ctrl+r to reload"
	case "n":
		for _, e := range m.entries {
			m.session.Disable(e.Code)
		}
		m.status = "all events disabled; ctrl+r to reload"
	}
	m.listStart = window(m.cursor, m.listStart, m.height, len(m.entries))
}

// toggleEntry flips the code under entry i. Entries sharing the code follow.
func (m *Model) toggleEntry(i int) {
	if i < 0 || i >= len(m.entries) {
		return
	}
	code := m.entries[i].Code
	if m.session.IsEnabled(code) {
		m.session.Disable(code)
		m.status = fmt.Sprintf("ID %d disabled; ctrl+r to reload", code)
		return
	}
	m.session.Enable(code)
	m.status = fmt.Sprintf("ID %d enabled; ctrl+r to reload", code)
}

func (m *Model) renderChecklist() string {
	var b strings.Builder
	b.WriteString(m.styles.label.Render("Event selection (applies on next reload)") + "\n\n")

	end := min(m.listStart+m.height, len(m.entries))
	for i := m.listStart; i < end; i++ {
		e := m.entries[i]
		box := "[ ]"
		style := m.styles.off
		if m.session.IsEnabled(e.Code) {
			box = "[x]"
			style = m.styles.success
		}
		line := fmt.Sprintf("%s ID: %d - %s", box, e.Code, e.Pattern)
		if i == m.cursor {
			b.WriteString(m.styles.cursor.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + style.Render(line) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// window returns the first visible index so that cursor stays within a
// viewport of height rows over total items.
func window(cursor, start, height, total int) int {
	if height <= 0 || total <= height {
		return 0
	}
	if cursor < start {
		start = cursor
	}
	if cursor >= start+height {
		start = cursor - height + 1
	}
	return max(0, min(start, total-height))
}
