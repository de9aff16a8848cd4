package tui

import (
	"database/sql"

	"todo-cli/internal/todo"
)

// phase is the tag of the application state. Initial auto-transitions to
// ListSelect on the first processing tick; Error and Exit are terminal and
// are never rendered (the driver quits before the next frame).
type phase int

const (
	phaseInitial phase = iota
	phaseListSelect
	phaseListView
	phaseTextInput
	phaseError
	phaseExit
)

func (p phase) String() string {
	switch p {
	case phaseInitial:
		return "Initial"
	case phaseListSelect:
		return "ListSelect"
	case phaseListView:
		return "ListView"
	case phaseTextInput:
		return "TextInput"
	case phaseError:
		return "Error"
	case phaseExit:
		return "Exit"
	}
	return "unknown"
}

// inputMode parameterizes the modal text-entry state.
type inputMode int

const (
	inputNewList inputMode = iota
	inputNewItem
	inputEditItem
)

type appModel struct {
	db   *sql.DB
	logf func(format string, args ...any)

	phase phase

	// ListSelect state.
	lists      []todo.ListSummary
	listCursor int

	// ListView state.
	list       *todo.TodoList
	itemIDs    []todo.ItemID
	itemCursor int

	// TextInput state.
	mode        inputMode
	inputListID todo.ListID
	inputItemID todo.ItemID
	buffer      textBuffer

	// Error state.
	err error

	width  int
	height int
	keys   keyMap
}

func newAppModel(db *sql.DB, logf func(format string, args ...any)) appModel {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return appModel{
		db:    db,
		logf:  logf,
		phase: phaseInitial,
		keys:  defaultKeyMap(),
	}
}

// selectedList returns the summary under the selection cursor, if any.
func (m *appModel) selectedList() (todo.ListSummary, bool) {
	if len(m.lists) == 0 || m.listCursor < 0 || m.listCursor >= len(m.lists) {
		return todo.ListSummary{}, false
	}
	return m.lists[m.listCursor], true
}

// selectedItemID returns the item id under the selection cursor, if any.
func (m *appModel) selectedItemID() (todo.ItemID, bool) {
	if len(m.itemIDs) == 0 || m.itemCursor < 0 || m.itemCursor >= len(m.itemIDs) {
		return 0, false
	}
	return m.itemIDs[m.itemCursor], true
}

// refreshItemIDs re-snapshots the ordered item ids after a mutation and
// clamps the cursor back into range.
func (m *appModel) refreshItemIDs() {
	m.itemIDs = m.list.ItemIDs()
	if m.itemCursor >= len(m.itemIDs) {
		m.itemCursor = len(m.itemIDs) - 1
	}
	if m.itemCursor < 0 {
		m.itemCursor = 0
	}
}
