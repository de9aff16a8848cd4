package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"todo-cli/internal/todo"
)

type itemRow struct {
	ID          todo.ItemID `json:"id"`
	ListID      todo.ListID `json:"listId"`
	Description string      `json:"description"`
	Completed   bool        `json:"completed"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func itemRowOf(it *todo.Item) itemRow {
	return itemRow{
		ID:          it.ID(),
		ListID:      it.ListID(),
		Description: it.Description(),
		Completed:   it.Completed(),
		CreatedAt:   it.CreatedAt(),
	}
}

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage items in a todo list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <list-id>",
		Short: "Show all items of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseListID(args[0])
			if err != nil {
				return err
			}

			db, err := app.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			l, err := todo.LoadList(cmd.Context(), db, id)
			if err != nil {
				return err
			}
			if app.JSON {
				rows := make([]itemRow, 0, l.Len())
				for _, itemID := range l.ItemIDs() {
					it, _ := l.Item(itemID)
					rows = append(rows, itemRowOf(it))
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(rows)
			}
			for _, itemID := range l.ItemIDs() {
				it, _ := l.Item(itemID)
				mark := " "
				if it.Completed() {
					mark = "x"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t[%s]\t%s\n", it.ID(), mark, it.Description())
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <list-id> <description>",
		Short: "Add an item to a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseListID(args[0])
			if err != nil {
				return err
			}
			description := strings.TrimSpace(strings.Join(args[1:], " "))
			if description == "" {
				return fmt.Errorf("description must not be empty")
			}

			db, err := app.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			l, err := todo.LoadList(cmd.Context(), db, listID)
			if err != nil {
				return err
			}
			id, err := l.AddItem(cmd.Context(), db, description)
			if err != nil {
				return err
			}
			if app.JSON {
				it, _ := l.Item(id)
				return json.NewEncoder(cmd.OutOrStdout()).Encode(itemRowOf(it))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", id, description)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <list-id> <item-id>",
		Short: "Flip an item's completion flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseListID(args[0])
			if err != nil {
				return err
			}
			itemID, err := parseItemID(args[1])
			if err != nil {
				return err
			}

			db, err := app.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			l, err := todo.LoadList(cmd.Context(), db, listID)
			if err != nil {
				return err
			}
			it, ok := l.Item(itemID)
			if !ok {
				return fmt.Errorf("item not found in list %d: %d", listID, itemID)
			}
			it.SetCompleted(!it.Completed())
			if err := l.Save(cmd.Context(), db); err != nil {
				return err
			}
			if app.JSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(itemRowOf(it))
			}
			mark := " "
			if it.Completed() {
				mark = "x"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t[%s]\t%s\n", it.ID(), mark, it.Description())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <list-id> <item-id>",
		Short: "Remove an item from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseListID(args[0])
			if err != nil {
				return err
			}
			itemID, err := parseItemID(args[1])
			if err != nil {
				return err
			}

			db, err := app.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			l, err := todo.LoadList(cmd.Context(), db, listID)
			if err != nil {
				return err
			}
			existed, err := l.RemoveItem(cmd.Context(), db, itemID)
			if err != nil {
				return err
			}
			if !existed {
				return fmt.Errorf("item not found in list %d: %d", listID, itemID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d\n", itemID)
			return nil
		},
	})

	return cmd
}
