package tui

import "todo-cli/internal/todo"

// Message is a typed user intent or system event consumed by the state
// machine. Messages arrive through bubbletea's Update; processing one may
// chain at most one follow-up, which is drained before new input is read.
type Message interface {
	messageName() string
}

type (
	loadTodosMsg     struct{}
	decrementItemMsg struct{}
	incrementItemMsg struct{}
	selectListMsg    struct{ id todo.ListID }
	newListMsg       struct{}
	deleteListMsg    struct{}
	newItemMsg       struct{}
	editItemMsg      struct{}
	deleteItemMsg    struct{}
	toggleItemMsg    struct{}
	commitInputMsg   struct{}
	cancelInputMsg   struct{}
	insertCharMsg    struct{ r rune }
	backspaceMsg     struct{}
	deleteCharMsg    struct{}
	cursorLeftMsg    struct{}
	cursorRightMsg   struct{}
	quitMsg          struct{}
)

func (loadTodosMsg) messageName() string     { return "LoadTodos" }
func (decrementItemMsg) messageName() string { return "DecrementItem" }
func (incrementItemMsg) messageName() string { return "IncrementItem" }
func (selectListMsg) messageName() string    { return "SelectTodoList" }
func (newListMsg) messageName() string       { return "NewTodoList" }
func (deleteListMsg) messageName() string    { return "DeleteList" }
func (newItemMsg) messageName() string       { return "NewItem" }
func (editItemMsg) messageName() string      { return "EditItem" }
func (deleteItemMsg) messageName() string    { return "DeleteItem" }
func (toggleItemMsg) messageName() string    { return "ToggleItemComplete" }
func (commitInputMsg) messageName() string   { return "CommitTextInput" }
func (cancelInputMsg) messageName() string   { return "CancelTextInput" }
func (insertCharMsg) messageName() string    { return "InsertChar" }
func (backspaceMsg) messageName() string     { return "Backspace" }
func (deleteCharMsg) messageName() string    { return "Delete" }
func (cursorLeftMsg) messageName() string    { return "CursorLeft" }
func (cursorRightMsg) messageName() string   { return "CursorRight" }
func (quitMsg) messageName() string          { return "Quit" }
