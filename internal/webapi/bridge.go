// Package webapi adapts the todo repository for a browser host. It is the
// target-neutral half of the wasm binding: plain Go values in, plain Go
// values out, with errors flattened into a structured chain the host can
// turn into native error objects.
package webapi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"todo-cli/internal/todo"
)

// List is the host-facing shape of a todo list. Timestamps are unix seconds
// so the host can feed them straight into Date constructors.
type List struct {
	ID        uint32 `json:"id"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"createdAt"`
	Items     []Item `json:"items"`
}

type Item struct {
	ID          uint32 `json:"id"`
	ListID      uint32 `json:"listId"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   int64  `json:"createdAt"`
}

// Bridge owns one open todo database on behalf of the host. All methods are
// safe to expose as independent async entry points; each call is its own
// unit of work against the store.
type Bridge struct {
	db   *sql.DB
	path string
	key  string
}

// Open opens (creating if necessary) the database at path. The path is
// resolved to an absolute one up front so later file inspection (see
// IsEncrypted) is immune to working-directory changes.
func Open(ctx context.Context, path string) (*Bridge, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}
	db, err := todo.Open(ctx, abs)
	if err != nil {
		return nil, fmt.Errorf("opening todo database: %w", err)
	}
	return &Bridge{db: db, path: abs}, nil
}

func (b *Bridge) Close() error {
	return b.db.Close()
}

// ListAll returns every list keyed by id (a Record<number, string> host-side).
func (b *Bridge) ListAll(ctx context.Context) (map[uint32]string, error) {
	all, err := todo.ListAll(ctx, b.db)
	if err != nil {
		return nil, err
	}
	out := make(map[uint32]string, len(all))
	for _, s := range all {
		out[uint32(s.ID)] = s.Title
	}
	return out, nil
}

func (b *Bridge) CreateList(ctx context.Context, title string) (List, error) {
	l, err := todo.CreateList(ctx, b.db, title)
	if err != nil {
		return List{}, err
	}
	return listValue(l), nil
}

func (b *Bridge) LoadList(ctx context.Context, id uint32) (List, error) {
	l, err := todo.LoadList(ctx, b.db, todo.ListID(id))
	if err != nil {
		return List{}, err
	}
	return listValue(l), nil
}

func (b *Bridge) RenameList(ctx context.Context, id uint32, title string) (List, error) {
	l, err := todo.LoadList(ctx, b.db, todo.ListID(id))
	if err != nil {
		return List{}, err
	}
	l.SetTitle(title)
	if err := l.Save(ctx, b.db); err != nil {
		return List{}, err
	}
	return listValue(l), nil
}

// DeleteList reports whether a list existed for the id.
func (b *Bridge) DeleteList(ctx context.Context, id uint32) (bool, error) {
	return todo.DeleteList(ctx, b.db, todo.ListID(id))
}

func (b *Bridge) AddItem(ctx context.Context, listID uint32, description string) (Item, error) {
	l, err := todo.LoadList(ctx, b.db, todo.ListID(listID))
	if err != nil {
		return Item{}, err
	}
	id, err := l.AddItem(ctx, b.db, description)
	if err != nil {
		return Item{}, err
	}
	it, _ := l.Item(id)
	return itemValue(it), nil
}

// RemoveItem reports whether an item existed for the id.
func (b *Bridge) RemoveItem(ctx context.Context, listID, itemID uint32) (bool, error) {
	l, err := todo.LoadList(ctx, b.db, todo.ListID(listID))
	if err != nil {
		return false, err
	}
	return l.RemoveItem(ctx, b.db, todo.ItemID(itemID))
}

func (b *Bridge) SetItemDescription(ctx context.Context, listID, itemID uint32, description string) (Item, error) {
	return b.mutateItem(ctx, listID, itemID, func(it *todo.Item) {
		it.SetDescription(description)
	})
}

func (b *Bridge) SetItemCompleted(ctx context.Context, listID, itemID uint32, completed bool) (Item, error) {
	return b.mutateItem(ctx, listID, itemID, func(it *todo.Item) {
		it.SetCompleted(completed)
	})
}

func (b *Bridge) mutateItem(ctx context.Context, listID, itemID uint32, mutate func(*todo.Item)) (Item, error) {
	l, err := todo.LoadList(ctx, b.db, todo.ListID(listID))
	if err != nil {
		return Item{}, err
	}
	it, ok := l.Item(todo.ItemID(itemID))
	if !ok {
		return Item{}, todo.NotFoundError{Kind: "item", ID: itemID}
	}
	mutate(it)
	if err := l.Save(ctx, b.db); err != nil {
		return Item{}, err
	}
	return itemValue(it), nil
}

// SetEncryptionKey registers the session key used by the host's storage
// layer. At-rest encryption of pages is the storage layer's concern; the
// bridge only carries the key and can tell whether the file on disk is
// encrypted (see IsEncrypted).
func (b *Bridge) SetEncryptionKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("encryption key must not be empty")
	}
	b.key = key
	return nil
}

func (b *Bridge) HasEncryptionKey() bool {
	return b.key != ""
}

func listValue(l *todo.TodoList) List {
	out := List{
		ID:        uint32(l.ID()),
		Title:     l.Title(),
		CreatedAt: l.CreatedAt().Unix(),
		Items:     []Item{},
	}
	for _, id := range l.ItemIDs() {
		it, _ := l.Item(id)
		out.Items = append(out.Items, itemValue(it))
	}
	return out
}

func itemValue(it *todo.Item) Item {
	return Item{
		ID:          uint32(it.ID()),
		ListID:      uint32(it.ListID()),
		Description: it.Description(),
		Completed:   it.Completed(),
		CreatedAt:   it.CreatedAt().Unix(),
	}
}
