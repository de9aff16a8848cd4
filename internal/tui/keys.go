package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Toggle key.Binding
	Quit   key.Binding
	Commit key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		// Down shares Up's combined help label, so it carries none itself.
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "navigate")),
		Down:   key.NewBinding(key.WithKeys("down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// Help line contents per phase. The renderer derives its footer from these
// bindings, so the hints cannot drift from what mapKey actually matches.
func (k keyMap) listSelectHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.New, k.Delete, k.Quit}
}

func (k keyMap) listViewHelp() []key.Binding {
	return []key.Binding{k.Up, k.Toggle, k.New, k.Edit, k.Delete, k.Back, k.Quit}
}

func (k keyMap) textInputHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Cancel}
}

// mapKey converts a raw key event into a message given the current phase.
// It is a pure mapping: no state is mutated here. A nil return means the
// event is ignored and the loop just redraws.
func (m *appModel) mapKey(k tea.KeyMsg) Message {
	switch m.phase {
	case phaseListSelect:
		switch {
		case key.Matches(k, m.keys.Up):
			return decrementItemMsg{}
		case key.Matches(k, m.keys.Down):
			return incrementItemMsg{}
		case key.Matches(k, m.keys.Select):
			if s, ok := m.selectedList(); ok {
				return selectListMsg{id: s.ID}
			}
			return nil
		case key.Matches(k, m.keys.New):
			return newListMsg{}
		case key.Matches(k, m.keys.Delete):
			return deleteListMsg{}
		}

	case phaseListView:
		switch {
		case key.Matches(k, m.keys.Back):
			// Back to the list-of-lists; esc is not quit here.
			return loadTodosMsg{}
		case key.Matches(k, m.keys.Up):
			return decrementItemMsg{}
		case key.Matches(k, m.keys.Down):
			return incrementItemMsg{}
		case key.Matches(k, m.keys.Toggle):
			return toggleItemMsg{}
		case key.Matches(k, m.keys.New):
			return newItemMsg{}
		case key.Matches(k, m.keys.Edit):
			return editItemMsg{}
		case key.Matches(k, m.keys.Delete):
			return deleteItemMsg{}
		}

	case phaseTextInput:
		// Inside text entry every printable key is literal input; only the
		// editing keys below have meaning. Control chords arrive as distinct
		// key types (KeyCtrlA, ...) and fall through to be ignored, so no
		// control codes ever reach the buffer.
		switch k.Type {
		case tea.KeyEsc:
			return cancelInputMsg{}
		case tea.KeyEnter:
			return commitInputMsg{}
		case tea.KeyBackspace:
			return backspaceMsg{}
		case tea.KeyDelete:
			return deleteCharMsg{}
		case tea.KeyLeft:
			return cursorLeftMsg{}
		case tea.KeyRight:
			return cursorRightMsg{}
		case tea.KeySpace:
			return insertCharMsg{r: ' '}
		case tea.KeyRunes:
			if k.Alt || len(k.Runes) == 0 {
				return nil
			}
			return insertCharMsg{r: k.Runes[0]}
		}
		return nil
	}

	// Global fallback outside text entry: esc or q quits.
	if key.Matches(k, m.keys.Quit) {
		return quitMsg{}
	}
	return nil
}
