package webapi

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"todo-cli/internal/todo"
)

func openTestBridge(t *testing.T) *Bridge {
	t.Helper()
	b, err := Open(context.Background(), filepath.Join(t.TempDir(), "db.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBridgeListRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := openTestBridge(t)

	created, err := b.CreateList(ctx, "Groceries")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if created.Title != "Groceries" || created.ID == 0 {
		t.Fatalf("unexpected list value: %+v", created)
	}
	if created.Items == nil || len(created.Items) != 0 {
		t.Fatalf("new list should carry an empty items slice, got %+v", created.Items)
	}

	first, err := b.AddItem(ctx, created.ID, "Milk")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := b.AddItem(ctx, created.ID, "Eggs"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	loaded, err := b.LoadList(ctx, created.ID)
	if err != nil {
		t.Fatalf("LoadList: %v", err)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(loaded.Items))
	}
	if loaded.Items[0].Description != "Milk" || loaded.Items[1].Description != "Eggs" {
		t.Fatalf("items out of order: %+v", loaded.Items)
	}
	if loaded.Items[0].ListID != created.ID {
		t.Fatalf("item carries list id %d, want %d", loaded.Items[0].ListID, created.ID)
	}
	if loaded.CreatedAt == 0 || loaded.Items[0].CreatedAt == 0 {
		t.Fatal("timestamps should be populated")
	}

	toggled, err := b.SetItemCompleted(ctx, created.ID, first.ID, true)
	if err != nil {
		t.Fatalf("SetItemCompleted: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("item should be completed")
	}

	renamed, err := b.RenameList(ctx, created.ID, "Weekend shop")
	if err != nil {
		t.Fatalf("RenameList: %v", err)
	}
	if renamed.Title != "Weekend shop" {
		t.Fatalf("got title %q", renamed.Title)
	}

	all, err := b.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if all[created.ID] != "Weekend shop" {
		t.Fatalf("ListAll = %v", all)
	}
}

func TestBridgeRemoveReportsExistence(t *testing.T) {
	ctx := context.Background()
	b := openTestBridge(t)

	l, err := b.CreateList(ctx, "Chores")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	it, err := b.AddItem(ctx, l.ID, "Vacuum")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	existed, err := b.RemoveItem(ctx, l.ID, it.ID)
	if err != nil || !existed {
		t.Fatalf("RemoveItem = %v, %v; want true, nil", existed, err)
	}
	existed, err = b.RemoveItem(ctx, l.ID, it.ID)
	if err != nil || existed {
		t.Fatalf("second RemoveItem = %v, %v; want false, nil", existed, err)
	}

	existed, err = b.DeleteList(ctx, l.ID)
	if err != nil || !existed {
		t.Fatalf("DeleteList = %v, %v; want true, nil", existed, err)
	}
	if _, err := b.LoadList(ctx, l.ID); err == nil {
		t.Fatal("loading a deleted list should fail")
	}
}

func TestBridgeMissingItem(t *testing.T) {
	ctx := context.Background()
	b := openTestBridge(t)

	l, err := b.CreateList(ctx, "Chores")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	_, err = b.SetItemDescription(ctx, l.ID, 999, "nope")
	var nf todo.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestErrorValueOf(t *testing.T) {
	if ErrorValueOf(nil) != nil {
		t.Fatal("nil error should flatten to nil")
	}

	inner := errors.New("disk is sideways")
	outer := fmt.Errorf("saving list: %w", inner)
	ev := ErrorValueOf(outer)
	if ev.Msg != "saving list: disk is sideways" {
		t.Fatalf("outer msg = %q", ev.Msg)
	}
	if ev.Source == nil || ev.Source.Msg != "disk is sideways" {
		t.Fatalf("source = %+v", ev.Source)
	}
	if ev.Source.Source != nil {
		t.Fatal("chain should end at the root cause")
	}
}

func TestIsEncrypted(t *testing.T) {
	ctx := context.Background()
	b := openTestBridge(t)
	if _, err := b.CreateList(ctx, "anything"); err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	enc, err := b.IsEncrypted()
	if err != nil {
		t.Fatalf("IsEncrypted: %v", err)
	}
	if enc {
		t.Fatal("plaintext database reported as encrypted")
	}

	scrambled := filepath.Join(t.TempDir(), "scrambled.sqlite")
	if err := os.WriteFile(scrambled, []byte("0123456789abcdef padding"), 0o644); err != nil {
		t.Fatal(err)
	}
	b2 := &Bridge{path: scrambled}
	enc, err = b2.IsEncrypted()
	if err != nil {
		t.Fatalf("IsEncrypted: %v", err)
	}
	if !enc {
		t.Fatal("garbage header should read as encrypted")
	}
}

func TestIsEncryptedSurvivesWorkingDirChange(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	elsewhere := t.TempDir()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldwd) })

	b, err := Open(ctx, "db.sqlite")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()
	if _, err := b.CreateList(ctx, "anything"); err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	if err := os.Chdir(elsewhere); err != nil {
		t.Fatal(err)
	}
	enc, err := b.IsEncrypted()
	if err != nil {
		t.Fatalf("IsEncrypted after chdir: %v", err)
	}
	if enc {
		t.Fatal("plaintext database reported as encrypted")
	}
}

func TestEncryptionKeySession(t *testing.T) {
	b := openTestBridge(t)
	if b.HasEncryptionKey() {
		t.Fatal("fresh bridge should not carry a key")
	}
	if err := b.SetEncryptionKey("  "); err == nil {
		t.Fatal("blank key should be rejected")
	}
	if err := b.SetEncryptionKey("hunter2"); err != nil {
		t.Fatalf("SetEncryptionKey: %v", err)
	}
	if !b.HasEncryptionKey() {
		t.Fatal("key should be registered for the session")
	}
}
