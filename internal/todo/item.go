package todo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Item is an entry in a todo list. The store is the source of truth; an Item
// in memory is a working copy that must be saved to become durable. The dirty
// flag gates whether a save performs a write.
type Item struct {
	id          ItemID
	listID      ListID
	description string
	completed   bool
	createdAt   time.Time
	dirty       bool
}

func (it *Item) ID() ItemID           { return it.id }
func (it *Item) ListID() ListID       { return it.listID }
func (it *Item) Description() string  { return it.description }
func (it *Item) Completed() bool      { return it.completed }
func (it *Item) CreatedAt() time.Time { return it.createdAt }
func (it *Item) Dirty() bool          { return it.dirty }

// SetDescription marks the item dirty only if the value actually changed.
func (it *Item) SetDescription(description string) {
	it.dirty = it.dirty || description != it.description
	it.description = description
}

// SetCompleted marks the item dirty only if the value actually changed.
func (it *Item) SetCompleted(completed bool) {
	it.dirty = it.dirty || completed != it.completed
	it.completed = completed
}

// newItem inserts a row and returns the working copy with the id and
// timestamp the store assigned. Callers go through (*TodoList).AddItem.
func newItem(ctx context.Context, db *sql.DB, listID ListID, description string) (*Item, error) {
	var (
		id        ItemID
		createdAt string
	)
	err := db.QueryRowContext(ctx,
		`INSERT INTO todo_items(list_id, description) VALUES(?, ?) RETURNING id, created_at`,
		uint32(listID), description,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}
	ts, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("item created_at: %w", err)
	}
	return &Item{
		id:          id,
		listID:      listID,
		description: description,
		createdAt:   ts,
	}, nil
}

// save writes the item if it is dirty, clearing the flag on success.
func (it *Item) save(ctx context.Context, db *sql.DB) error {
	if !it.dirty {
		return nil
	}
	res, err := db.ExecContext(ctx,
		`UPDATE todo_items SET description = ?, is_completed = ? WHERE id = ?`,
		it.description, it.completed, uint32(it.id),
	)
	if err != nil {
		return fmt.Errorf("updating item %d: %w", it.id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n != 1 {
		return invariantf("saving item %d affected %d rows, want 1", it.id, n)
	}
	it.dirty = false
	return nil
}

// LoadItem loads a single item by id.
func LoadItem(ctx context.Context, db *sql.DB, id ItemID) (*Item, error) {
	var (
		listID    ListID
		desc      string
		completed bool
		createdAt string
	)
	err := db.QueryRowContext(ctx,
		`SELECT list_id, description, is_completed, created_at FROM todo_items WHERE id = ?`,
		uint32(id),
	).Scan(&listID, &desc, &completed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFoundError{Kind: "item", ID: uint32(id)}
	}
	if err != nil {
		return nil, fmt.Errorf("loading item %d: %w", id, err)
	}
	ts, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("item created_at: %w", err)
	}
	return &Item{
		id:          id,
		listID:      listID,
		description: desc,
		completed:   completed,
		createdAt:   ts,
	}, nil
}

// loadItemsForList eagerly loads every item owned by a list.
func loadItemsForList(ctx context.Context, db *sql.DB, listID ListID) (map[ItemID]*Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, description, is_completed, created_at FROM todo_items WHERE list_id = ?`,
		uint32(listID),
	)
	if err != nil {
		return nil, fmt.Errorf("querying items for list %d: %w", listID, err)
	}
	defer rows.Close()

	out := map[ItemID]*Item{}
	for rows.Next() {
		var (
			id        ItemID
			desc      string
			completed bool
			createdAt string
		)
		if err := rows.Scan(&id, &desc, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		ts, err := parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("item created_at: %w", err)
		}
		if _, exists := out[id]; exists {
			return nil, invariantf("store returned duplicate item id %d for list %d", id, listID)
		}
		out[id] = &Item{
			id:          id,
			listID:      listID,
			description: desc,
			completed:   completed,
			createdAt:   ts,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}
	return out, nil
}

// deleteItem removes an item row; true means a row existed.
func deleteItem(ctx context.Context, db *sql.DB, id ItemID) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM todo_items WHERE id = ?`, uint32(id))
	if err != nil {
		return false, fmt.Errorf("deleting item %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting item %d: %w", id, err)
	}
	return n > 0, nil
}
