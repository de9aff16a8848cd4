package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
	modalBodyW     = 50
)

func (m appModel) View() string {
	w, h := m.width, m.height
	if w <= 0 {
		w = fallbackWidth
	}
	if h <= 0 {
		h = fallbackHeight
	}

	switch m.phase {
	case phaseInitial:
		return "spinning up (<q> or <esc> to quit)"
	case phaseListSelect:
		return m.viewListSelect(w, h)
	case phaseListView:
		return m.viewListView(w, h)
	case phaseTextInput:
		return m.viewTextInput(w, h)
	}

	// Error/Exit: the loop quits before waiting for input again, so this is
	// only the final (blank) frame bubbletea paints on shutdown.
	return ""
}

func (m appModel) viewListSelect(w, h int) string {
	rows := make([]string, 0, len(m.lists))
	for i, s := range m.lists {
		rows = append(rows, renderRow(s.Title, i == m.listCursor))
	}
	if len(rows) == 0 {
		rows = append(rows, styleMuted().Italic(true).Render("  (no lists yet - press 'n' to create one)"))
	}
	help := renderHelp(m.keys.listSelectHelp()...)
	return renderFrame(w, h, "Select a todo list", rows, help)
}

func (m appModel) viewListView(w, h int) string {
	rows := make([]string, 0, len(m.itemIDs))
	for i, id := range m.itemIDs {
		it, ok := m.list.Item(id)
		if !ok {
			continue
		}
		checkbox := "[ ] "
		label := it.Description()
		if it.Completed() {
			checkbox = "[✓] "
			label = styleMuted().Render(label)
		}
		rows = append(rows, renderRow(checkbox+label, i == m.itemCursor))
	}
	if len(rows) == 0 {
		rows = append(rows, styleMuted().Italic(true).Render("  (no items yet - press 'n' to create one)"))
	}
	help := renderHelp(m.keys.listViewHelp()...)
	return renderFrame(w, h, m.list.Title(), rows, help)
}

func (m appModel) viewTextInput(w, h int) string {
	var title string
	switch m.mode {
	case inputNewList:
		title = "Create new todo list"
	case inputNewItem:
		title = "Create new item"
	case inputEditItem:
		title = "Edit item"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(modalBodyW)

	body := strings.Join([]string{
		styleTitle().Render(title),
		"",
		renderInputLine(modalBodyW-2, m.buffer),
		"",
		renderHelp(m.keys.textInputHelp()...),
	}, "\n")

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box.Render(body))
}

// renderInputLine renders the edit buffer with a visible cursor glyph,
// clamped to the modal body width so styling never bleeds past the border.
func renderInputLine(bodyW int, b textBuffer) string {
	if bodyW < 10 {
		bodyW = 10
	}

	cursorStyle := lipgloss.NewStyle().Reverse(true)

	var sb strings.Builder
	sb.WriteString(string(b.runes[:b.cursor]))
	if b.cursor < len(b.runes) {
		sb.WriteString(cursorStyle.Render(string(b.runes[b.cursor])))
		sb.WriteString(string(b.runes[b.cursor+1:]))
	} else {
		sb.WriteString(cursorStyle.Render(" "))
	}

	line := sb.String()
	if xansi.StringWidth(line) > bodyW {
		// Keep the cursor in view by trimming from the left.
		over := xansi.StringWidth(line) - bodyW
		line = xansi.Cut(line, over, over+bodyW) + "\x1b[0m"
	}
	return line
}

func renderRow(label string, selected bool) string {
	if selected {
		return styleSelected().Render("> " + label)
	}
	return "  " + label
}

// renderHelp formats the footer from key bindings; the binding's own help
// metadata is the single source of truth for the labels.
func renderHelp(bindings ...key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, styleKeyHint().Render("<"+h.Key+">")+" "+styleMuted().Render(h.Desc))
	}
	return strings.Join(hints, "  ")
}

func renderFrame(w, h int, title string, rows []string, help string) string {
	inner := w - 4
	if inner < 20 {
		inner = 20
	}

	var sb strings.Builder
	sb.WriteString(styleTitle().Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(rows, "\n"))

	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(inner).
		Height(h-4).
		Render(sb.String())

	return frame + "\n " + help
}
