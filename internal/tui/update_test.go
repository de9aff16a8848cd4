package tui

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"todo-cli/internal/todo"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := todo.Open(context.Background(), filepath.Join(t.TempDir(), "db.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// drive feeds messages through Update, following chained follow-ups the same
// way the live program does.
func drive(t *testing.T, m appModel, msgs ...Message) appModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(appModel)
	}
	return m
}

func startModel(t *testing.T, db *sql.DB) appModel {
	t.Helper()
	m := newAppModel(db, nil)
	first := m.Init()()
	msg, ok := first.(Message)
	if !ok {
		t.Fatalf("Init must yield a state-machine message, got %T", first)
	}
	return drive(t, m, msg)
}

func TestInitialAutoTransitionsToListSelect(t *testing.T) {
	m := startModel(t, openTestDB(t))
	if m.phase != phaseListSelect {
		t.Fatalf("phase = %s, want ListSelect", m.phase)
	}
	if m.listCursor != 0 {
		t.Fatalf("expected fresh selection cursor, got %d", m.listCursor)
	}
}

func TestDecrementClampedAtTopAndOnEmpty(t *testing.T) {
	db := openTestDB(t)

	m := startModel(t, db) // no lists at all
	m = drive(t, m, decrementItemMsg{})
	if m.phase != phaseListSelect || m.listCursor != 0 {
		t.Fatalf("empty decrement: phase=%s cursor=%d", m.phase, m.listCursor)
	}

	if _, err := todo.CreateList(context.Background(), db, "only"); err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	m = drive(t, m, loadTodosMsg{}, decrementItemMsg{})
	if m.listCursor != 0 {
		t.Fatalf("decrement at index 0 moved cursor to %d", m.listCursor)
	}
}

func TestIncrementClampedAtBottom(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b"} {
		if _, err := todo.CreateList(ctx, db, title); err != nil {
			t.Fatalf("CreateList: %v", err)
		}
	}

	m := startModel(t, db)
	m = drive(t, m, incrementItemMsg{}, incrementItemMsg{}, incrementItemMsg{})
	if m.listCursor != 1 {
		t.Fatalf("cursor = %d, want clamped at 1", m.listCursor)
	}
}

func TestEditItemInListSelectIsError(t *testing.T) {
	m := startModel(t, openTestDB(t))

	m = drive(t, m, editItemMsg{})
	if m.phase != phaseError {
		t.Fatalf("phase = %s, want Error", m.phase)
	}
	if m.err == nil || !strings.Contains(m.err.Error(), "EditItem") || !strings.Contains(m.err.Error(), "ListSelect") {
		t.Fatalf("error must name the message and state, got %v", m.err)
	}
}

func TestSelectListEntersListView(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	l, err := todo.CreateList(ctx, db, "work")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if _, err := l.AddItem(ctx, db, "ship it"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	m := startModel(t, db)
	m = drive(t, m, selectListMsg{id: l.ID()})
	if m.phase != phaseListView {
		t.Fatalf("phase = %s, want ListView", m.phase)
	}
	if m.list == nil || m.list.ID() != l.ID() || len(m.itemIDs) != 1 {
		t.Fatalf("unexpected list view state: list=%v items=%v", m.list, m.itemIDs)
	}
}

func TestWhitespaceCommitCreatesNothing(t *testing.T) {
	db := openTestDB(t)
	l, err := todo.CreateList(context.Background(), db, "empty input")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	m := startModel(t, db)
	m = drive(t, m, selectListMsg{id: l.ID()}, newItemMsg{})
	if m.phase != phaseTextInput || m.mode != inputNewItem {
		t.Fatalf("expected TextInput(NewItem), got %s", m.phase)
	}

	m = drive(t, m,
		insertCharMsg{r: ' '},
		insertCharMsg{r: '\t'},
		insertCharMsg{r: ' '},
		commitInputMsg{},
	)
	if m.phase != phaseListView {
		t.Fatalf("phase = %s, want ListView", m.phase)
	}
	if m.list.ID() != l.ID() {
		t.Fatalf("returned to list %d, want %d", m.list.ID(), l.ID())
	}
	if m.list.Len() != 0 {
		t.Fatalf("whitespace-only commit created %d item(s)", m.list.Len())
	}
}

func TestCommitNewListReturnsToListSelect(t *testing.T) {
	db := openTestDB(t)

	m := startModel(t, db)
	m = drive(t, m, newListMsg{})
	for _, r := range "Groceries" {
		m = drive(t, m, insertCharMsg{r: r})
	}
	m = drive(t, m, commitInputMsg{})

	if m.phase != phaseListSelect {
		t.Fatalf("phase = %s, want ListSelect", m.phase)
	}
	if len(m.lists) != 1 || m.lists[0].Title != "Groceries" {
		t.Fatalf("unexpected lists after commit: %v", m.lists)
	}
}

func TestCancelNewItemReturnsToOriginListView(t *testing.T) {
	db := openTestDB(t)
	l, err := todo.CreateList(context.Background(), db, "origin")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	m := startModel(t, db)
	m = drive(t, m, selectListMsg{id: l.ID()}, newItemMsg{}, insertCharMsg{r: 'x'}, cancelInputMsg{})
	if m.phase != phaseListView || m.list.ID() != l.ID() {
		t.Fatalf("cancel did not return to origin list view: phase=%s", m.phase)
	}
	if m.list.Len() != 0 {
		t.Fatalf("cancel created an item")
	}
}

func TestDeleteListChainsReload(t *testing.T) {
	db := openTestDB(t)
	if _, err := todo.CreateList(context.Background(), db, "doomed"); err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	m := startModel(t, db)
	if len(m.lists) != 1 {
		t.Fatalf("expected 1 list, got %d", len(m.lists))
	}
	m = drive(t, m, deleteListMsg{})
	if m.phase != phaseListSelect {
		t.Fatalf("phase = %s, want ListSelect after chained reload", m.phase)
	}
	if len(m.lists) != 0 {
		t.Fatalf("expected no lists after delete, got %v", m.lists)
	}
}

func TestToggleSavesImmediately(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	l, err := todo.CreateList(ctx, db, "l")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	id, err := l.AddItem(ctx, db, "task")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	m := startModel(t, db)
	m = drive(t, m, selectListMsg{id: l.ID()}, toggleItemMsg{})
	if m.phase != phaseListView {
		t.Fatalf("phase = %s, want ListView", m.phase)
	}

	reloaded, err := todo.LoadList(ctx, db, l.ID())
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	it, ok := reloaded.Item(id)
	if !ok || !it.Completed() {
		t.Fatalf("toggle was not persisted")
	}
}

func TestDeleteItemStaysInListView(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	l, err := todo.CreateList(ctx, db, "l")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if _, err := l.AddItem(ctx, db, "a"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := l.AddItem(ctx, db, "b"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	m := startModel(t, db)
	m = drive(t, m, selectListMsg{id: l.ID()}, incrementItemMsg{}, deleteItemMsg{})
	if m.phase != phaseListView {
		t.Fatalf("phase = %s, want ListView", m.phase)
	}
	if len(m.itemIDs) != 1 {
		t.Fatalf("expected 1 item left, got %d", len(m.itemIDs))
	}
	if m.itemCursor != 0 {
		t.Fatalf("cursor not clamped after delete: %d", m.itemCursor)
	}
}

func TestEditItemPrefillsBufferCursorAtEnd(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	l, err := todo.CreateList(ctx, db, "l")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	id, err := l.AddItem(ctx, db, "old text")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	m := startModel(t, db)
	m = drive(t, m, selectListMsg{id: l.ID()}, editItemMsg{})
	if m.phase != phaseTextInput || m.mode != inputEditItem {
		t.Fatalf("expected TextInput(EditItem), got %s", m.phase)
	}
	if got := m.buffer.String(); got != "old text" {
		t.Fatalf("buffer = %q, want prefilled description", got)
	}
	if m.buffer.cursor != len([]rune("old text")) {
		t.Fatalf("cursor = %d, want end of buffer", m.buffer.cursor)
	}

	m = drive(t, m, backspaceMsg{}, backspaceMsg{}, backspaceMsg{}, backspaceMsg{})
	for _, r := range "news" {
		m = drive(t, m, insertCharMsg{r: r})
	}
	m = drive(t, m, commitInputMsg{})
	if m.phase != phaseListView {
		t.Fatalf("phase = %s, want ListView", m.phase)
	}

	reloaded, err := todo.LoadList(ctx, db, l.ID())
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	it, _ := reloaded.Item(id)
	if it.Description() != "old news" {
		t.Fatalf("description = %q, want %q", it.Description(), "old news")
	}
}

func TestQuitFromAnyState(t *testing.T) {
	m := startModel(t, openTestDB(t))
	m = drive(t, m, quitMsg{})
	if m.phase != phaseExit {
		t.Fatalf("phase = %s, want Exit", m.phase)
	}
	if m.err != nil {
		t.Fatalf("clean exit must not carry an error: %v", m.err)
	}
}

func TestLoadFailureBecomesErrorState(t *testing.T) {
	m := startModel(t, openTestDB(t))
	m = drive(t, m, selectListMsg{id: 9999})
	if m.phase != phaseError {
		t.Fatalf("phase = %s, want Error", m.phase)
	}
	if m.err == nil || !strings.Contains(m.err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", m.err)
	}
}
