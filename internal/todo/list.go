package todo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"
)

// TodoList exclusively owns its items in memory. Like Item, it is a working
// copy of the store's state; Save persists outstanding changes.
type TodoList struct {
	id        ListID
	title     string
	createdAt time.Time
	items     map[ItemID]*Item
	dirty     bool
}

func (l *TodoList) ID() ListID           { return l.id }
func (l *TodoList) Title() string        { return l.title }
func (l *TodoList) CreatedAt() time.Time { return l.createdAt }
func (l *TodoList) Dirty() bool          { return l.dirty }

// SetTitle marks the list dirty only if the value actually changed.
func (l *TodoList) SetTitle(title string) {
	l.dirty = l.dirty || title != l.title
	l.title = title
}

// Item returns the in-memory item for id, if present.
func (l *TodoList) Item(id ItemID) (*Item, bool) {
	it, ok := l.items[id]
	return it, ok
}

// ItemIDs returns the ids of all items in ascending id order. Iteration
// order over the collection is always this key order.
func (l *TodoList) ItemIDs() []ItemID {
	ids := make([]ItemID, 0, len(l.items))
	for id := range l.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len reports the number of items in memory.
func (l *TodoList) Len() int { return len(l.items) }

// ListSummary is one row of ListAll.
type ListSummary struct {
	ID    ListID `json:"id"`
	Title string `json:"title"`
}

// ListAll returns the id and title of every todo list, in id order.
func ListAll(ctx context.Context, db *sql.DB) ([]ListSummary, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, title FROM todo_lists ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying todo lists: %w", err)
	}
	defer rows.Close()

	var out []ListSummary
	for rows.Next() {
		var s ListSummary
		if err := rows.Scan(&s.ID, &s.Title); err != nil {
			return nil, fmt.Errorf("scanning todo list row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todo list rows: %w", err)
	}
	return out, nil
}

// CreateList inserts a new list and returns the working copy with the id and
// timestamp the store assigned. The new list has no items and is clean.
func CreateList(ctx context.Context, db *sql.DB, title string) (*TodoList, error) {
	var (
		id        ListID
		createdAt string
	)
	err := db.QueryRowContext(ctx,
		`INSERT INTO todo_lists(title) VALUES(?) RETURNING id, created_at`,
		title,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("inserting todo list: %w", err)
	}
	ts, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("todo list created_at: %w", err)
	}
	return &TodoList{
		id:        id,
		title:     title,
		createdAt: ts,
		items:     map[ItemID]*Item{},
	}, nil
}

// LoadList loads a list with all of its items eagerly loaded.
func LoadList(ctx context.Context, db *sql.DB, id ListID) (*TodoList, error) {
	var (
		title     string
		createdAt string
	)
	err := db.QueryRowContext(ctx,
		`SELECT title, created_at FROM todo_lists WHERE id = ?`, uint32(id),
	).Scan(&title, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFoundError{Kind: "todo list", ID: uint32(id)}
	}
	if err != nil {
		return nil, fmt.Errorf("loading todo list %d: %w", id, err)
	}
	ts, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("todo list created_at: %w", err)
	}
	items, err := loadItemsForList(ctx, db, id)
	if err != nil {
		return nil, fmt.Errorf("loading items for list %d: %w", id, err)
	}
	return &TodoList{
		id:        id,
		title:     title,
		createdAt: ts,
		items:     items,
	}, nil
}

// Save persists every dirty item first, then the list itself if its own
// dirty flag is set, clearing flags on success. Saving twice with no
// intervening mutation performs zero writes.
func (l *TodoList) Save(ctx context.Context, db *sql.DB) error {
	for _, id := range l.ItemIDs() {
		if err := l.items[id].save(ctx, db); err != nil {
			return fmt.Errorf("saving item: %w", err)
		}
	}
	if !l.dirty {
		return nil
	}
	res, err := db.ExecContext(ctx,
		`UPDATE todo_lists SET title = ? WHERE id = ?`, l.title, uint32(l.id),
	)
	if err != nil {
		return fmt.Errorf("updating todo list %d: %w", l.id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n != 1 {
		return invariantf("saving todo list %d affected %d rows, want 1", l.id, n)
	}
	l.dirty = false
	return nil
}

// DeleteList deletes a list by id; true means a row existed. Item rows go
// with it via the schema's ON DELETE CASCADE, not application logic.
func DeleteList(ctx context.Context, db *sql.DB, id ListID) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM todo_lists WHERE id = ?`, uint32(id))
	if err != nil {
		return false, fmt.Errorf("deleting todo list %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting todo list %d: %w", id, err)
	}
	return n > 0, nil
}

// AddItem inserts a new item at the store and into the in-memory collection,
// returning the id the store assigned.
func (l *TodoList) AddItem(ctx context.Context, db *sql.DB, description string) (ItemID, error) {
	it, err := newItem(ctx, db, l.id, description)
	if err != nil {
		return 0, fmt.Errorf("creating item: %w", err)
	}
	if _, exists := l.items[it.id]; exists {
		return 0, invariantf("store assigned item id %d which is already present in list %d", it.id, l.id)
	}
	l.items[it.id] = it
	return it.id, nil
}

// RemoveItem deletes an item at the store and from the in-memory collection;
// true means it existed. The store and memory must agree; disagreement is a
// bug and comes back as an InvariantError.
func (l *TodoList) RemoveItem(ctx context.Context, db *sql.DB, id ItemID) (bool, error) {
	existed, err := deleteItem(ctx, db, id)
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	_, inMemory := l.items[id]
	if existed != inMemory {
		return false, invariantf(
			"removing item %d from list %d: store existed=%v, memory existed=%v",
			id, l.id, existed, inMemory,
		)
	}
	delete(l.items, id)
	return existed, nil
}
