package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"todo-cli/internal/todo"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey_QuitOutsideTextEntry(t *testing.T) {
	m := newAppModel(nil, nil)

	m.phase = phaseInitial
	if msg := m.mapKey(keyRunes("q")); msg == nil || msg.messageName() != "Quit" {
		t.Fatalf("q in Initial: got %v", msg)
	}
	if msg := m.mapKey(tea.KeyMsg{Type: tea.KeyEsc}); msg == nil || msg.messageName() != "Quit" {
		t.Fatalf("esc in Initial: got %v", msg)
	}

	m.phase = phaseListSelect
	if msg := m.mapKey(keyRunes("q")); msg == nil || msg.messageName() != "Quit" {
		t.Fatalf("q in ListSelect: got %v", msg)
	}
}

func TestMapKey_EscInListViewIsBackNotQuit(t *testing.T) {
	m := newAppModel(nil, nil)
	m.phase = phaseListView

	if msg := m.mapKey(tea.KeyMsg{Type: tea.KeyEsc}); msg == nil || msg.messageName() != "LoadTodos" {
		t.Fatalf("esc in ListView: got %v", msg)
	}
	if msg := m.mapKey(keyRunes("q")); msg == nil || msg.messageName() != "Quit" {
		t.Fatalf("q in ListView: got %v", msg)
	}
}

func TestMapKey_TextEntryIsLiteral(t *testing.T) {
	m := newAppModel(nil, nil)
	m.phase = phaseTextInput

	// q is text inside the modal, not quit.
	msg := m.mapKey(keyRunes("q"))
	ins, ok := msg.(insertCharMsg)
	if !ok || ins.r != 'q' {
		t.Fatalf("q in TextInput: got %v", msg)
	}

	if msg := m.mapKey(tea.KeyMsg{Type: tea.KeySpace}); msg == nil || msg.(insertCharMsg).r != ' ' {
		t.Fatalf("space in TextInput: got %v", msg)
	}
	if msg := m.mapKey(tea.KeyMsg{Type: tea.KeyEsc}); msg == nil || msg.messageName() != "CancelTextInput" {
		t.Fatalf("esc in TextInput: got %v", msg)
	}
	if msg := m.mapKey(tea.KeyMsg{Type: tea.KeyEnter}); msg == nil || msg.messageName() != "CommitTextInput" {
		t.Fatalf("enter in TextInput: got %v", msg)
	}

	// Control chords must not become buffer input.
	if msg := m.mapKey(tea.KeyMsg{Type: tea.KeyCtrlC}); msg != nil {
		t.Fatalf("ctrl+c in TextInput inserted %v", msg)
	}
	if msg := m.mapKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a"), Alt: true}); msg != nil {
		t.Fatalf("alt+a in TextInput inserted %v", msg)
	}
}

func TestMapKey_SelectRequiresSelection(t *testing.T) {
	m := newAppModel(nil, nil)
	m.phase = phaseListSelect

	if msg := m.mapKey(tea.KeyMsg{Type: tea.KeyEnter}); msg != nil {
		t.Fatalf("enter with no lists produced %v", msg)
	}

	m.lists = append(m.lists, todo.ListSummary{ID: 7, Title: "x"})
	msg := m.mapKey(tea.KeyMsg{Type: tea.KeyEnter})
	sel, ok := msg.(selectListMsg)
	if !ok || sel.id != 7 {
		t.Fatalf("enter with selection: got %v", msg)
	}
}
