package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"todo-cli/internal/todo"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage todo lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			all, err := todo.ListAll(cmd.Context(), db)
			if err != nil {
				return err
			}
			if app.JSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(all)
			}
			for _, s := range all {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", s.ID, s.Title)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <title>",
		Short: "Create a todo list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return fmt.Errorf("title must not be empty")
			}

			db, err := app.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			l, err := todo.CreateList(cmd.Context(), db, title)
			if err != nil {
				return err
			}
			if app.JSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(todo.ListSummary{ID: l.ID(), Title: l.Title()})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", l.ID(), l.Title())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <list-id>",
		Short: "Delete a todo list and all of its items",
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

			existed, err := todo.DeleteList(cmd.Context(), db, id)
			if err != nil {
				return err
			}
			if !existed {
				return fmt.Errorf("todo list not found: %d", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
			return nil
		},
	})

	return cmd
}
