package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"todo-cli/internal/todo"
)

func (m appModel) Init() tea.Cmd {
	// The only automatic transition: Initial advances to ListSelect without
	// user input. Delivering it from Init guarantees it is processed before
	// any key event.
	return func() tea.Msg { return loadTodosMsg{} }
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		return m, nil
	case tea.KeyMsg:
		next := m.mapKey(v)
		if next == nil {
			return m, nil
		}
		return m.process(next)
	case Message:
		return m.process(v)
	}
	return m, nil
}

// process applies a message and keeps applying chained follow-ups until the
// chain is exhausted, then quits if a terminal state was reached. Follow-ups
// are drained before any new input is read.
func (m appModel) process(msg Message) (tea.Model, tea.Cmd) {
	for msg != nil {
		m.logf("message %s in state %s", msg.messageName(), m.phase)
		msg = m.apply(msg)
	}
	if m.phase == phaseExit || m.phase == phaseError {
		return m, tea.Quit
	}
	return m, nil
}

// fail moves to the terminal Error state.
func (m *appModel) fail(err error) {
	m.err = err
	m.phase = phaseError
}

// failUnexpected records a message delivered in a state that does not expect
// it. This is a programmer-error guard, not a recoverable condition.
func (m *appModel) failUnexpected(msg Message) {
	m.fail(fmt.Errorf("unexpected message %s in state %s", msg.messageName(), m.phase))
}

// apply performs one state transition and returns an optional chained
// follow-up message.
func (m *appModel) apply(msg Message) Message {
	ctx := context.Background()

	switch v := msg.(type) {
	case quitMsg:
		m.phase = phaseExit

	case loadTodosMsg:
		lists, err := todo.ListAll(ctx, m.db)
		if err != nil {
			m.fail(fmt.Errorf("listing all todo lists: %w", err))
			return nil
		}
		m.lists = lists
		m.listCursor = 0
		m.list = nil
		m.itemIDs = nil
		m.phase = phaseListSelect

	case decrementItemMsg:
		switch m.phase {
		case phaseListSelect:
			if m.listCursor > 0 {
				m.listCursor--
			}
		case phaseListView:
			if m.itemCursor > 0 {
				m.itemCursor--
			}
		default:
			m.failUnexpected(msg)
		}

	case incrementItemMsg:
		switch m.phase {
		case phaseListSelect:
			if m.listCursor < len(m.lists)-1 {
				m.listCursor++
			}
		case phaseListView:
			if m.itemCursor < len(m.itemIDs)-1 {
				m.itemCursor++
			}
		default:
			m.failUnexpected(msg)
		}

	case selectListMsg:
		list, err := todo.LoadList(ctx, m.db, v.id)
		if err != nil {
			m.fail(fmt.Errorf("loading todo list: %w", err))
			return nil
		}
		m.list = list
		m.itemIDs = list.ItemIDs()
		m.itemCursor = 0
		m.phase = phaseListView

	case newListMsg:
		m.mode = inputNewList
		m.buffer = newTextBuffer("")
		m.phase = phaseTextInput

	case deleteListMsg:
		if m.phase != phaseListSelect {
			m.failUnexpected(msg)
			return nil
		}
		s, ok := m.selectedList()
		if !ok {
			return nil
		}
		if _, err := todo.DeleteList(ctx, m.db, s.ID); err != nil {
			m.fail(fmt.Errorf("deleting todo list: %w", err))
			return nil
		}
		// Reload so the selection reflects the deletion.
		return loadTodosMsg{}

	case newItemMsg:
		if m.phase != phaseListView {
			m.failUnexpected(msg)
			return nil
		}
		m.mode = inputNewItem
		m.inputListID = m.list.ID()
		m.buffer = newTextBuffer("")
		m.phase = phaseTextInput

	case editItemMsg:
		if m.phase != phaseListView {
			m.failUnexpected(msg)
			return nil
		}
		id, ok := m.selectedItemID()
		if !ok {
			return nil
		}
		it, ok := m.list.Item(id)
		if !ok {
			return nil
		}
		m.mode = inputEditItem
		m.inputListID = m.list.ID()
		m.inputItemID = id
		m.buffer = newTextBuffer(it.Description())
		m.phase = phaseTextInput

	case deleteItemMsg:
		if m.phase != phaseListView {
			m.failUnexpected(msg)
			return nil
		}
		id, ok := m.selectedItemID()
		if !ok {
			return nil
		}
		if _, err := m.list.RemoveItem(ctx, m.db, id); err != nil {
			m.fail(fmt.Errorf("deleting item: %w", err))
			return nil
		}
		m.refreshItemIDs()

	case toggleItemMsg:
		if m.phase != phaseListView {
			m.failUnexpected(msg)
			return nil
		}
		id, ok := m.selectedItemID()
		if !ok {
			return nil
		}
		it, ok := m.list.Item(id)
		if !ok {
			return nil
		}
		it.SetCompleted(!it.Completed())
		if err := m.list.Save(ctx, m.db); err != nil {
			m.fail(fmt.Errorf("saving after toggle: %w", err))
			return nil
		}

	case commitInputMsg:
		if m.phase != phaseTextInput {
			m.failUnexpected(msg)
			return nil
		}
		text := strings.TrimSpace(m.buffer.String())
		if text == "" {
			// Whitespace-only input commits nothing.
			return cancelInputMsg{}
		}
		switch m.mode {
		case inputNewList:
			if _, err := todo.CreateList(ctx, m.db, text); err != nil {
				m.fail(fmt.Errorf("creating new todo list: %w", err))
				return nil
			}
			return loadTodosMsg{}
		case inputNewItem:
			list, err := todo.LoadList(ctx, m.db, m.inputListID)
			if err != nil {
				m.fail(fmt.Errorf("loading list for new item: %w", err))
				return nil
			}
			if _, err := list.AddItem(ctx, m.db, text); err != nil {
				m.fail(fmt.Errorf("adding new item: %w", err))
				return nil
			}
			m.list = list
			m.itemIDs = list.ItemIDs()
			m.itemCursor = 0
			m.phase = phaseListView
		case inputEditItem:
			list, err := todo.LoadList(ctx, m.db, m.inputListID)
			if err != nil {
				m.fail(fmt.Errorf("loading list for edit item: %w", err))
				return nil
			}
			if it, ok := list.Item(m.inputItemID); ok {
				it.SetDescription(text)
				if err := list.Save(ctx, m.db); err != nil {
					m.fail(fmt.Errorf("saving edited item: %w", err))
					return nil
				}
			}
			m.list = list
			m.itemIDs = list.ItemIDs()
			m.itemCursor = 0
			m.phase = phaseListView
		}

	case cancelInputMsg:
		if m.phase != phaseTextInput {
			m.failUnexpected(msg)
			return nil
		}
		switch m.mode {
		case inputNewList:
			return loadTodosMsg{}
		case inputNewItem, inputEditItem:
			return selectListMsg{id: m.inputListID}
		}

	case insertCharMsg:
		if m.phase != phaseTextInput {
			m.failUnexpected(msg)
			return nil
		}
		m.buffer.insert(v.r)

	case backspaceMsg:
		if m.phase != phaseTextInput {
			m.failUnexpected(msg)
			return nil
		}
		m.buffer.backspace()

	case deleteCharMsg:
		if m.phase != phaseTextInput {
			m.failUnexpected(msg)
			return nil
		}
		m.buffer.deleteForward()

	case cursorLeftMsg:
		if m.phase != phaseTextInput {
			m.failUnexpected(msg)
			return nil
		}
		m.buffer.left()

	case cursorRightMsg:
		if m.phase != phaseTextInput {
			m.failUnexpected(msg)
			return nil
		}
		m.buffer.right()

	default:
		m.failUnexpected(msg)
	}

	return nil
}
