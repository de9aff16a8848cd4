package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"todo-cli/internal/todo"
	"todo-cli/internal/tui"
)

// App carries the configuration resolved once at startup from flags and
// environment; nothing else in the program reads globals.
type App struct {
	DBPath  string
	LogPath string
	JSON    bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "Personal todo lists in your terminal, backed by SQLite",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Scriptable commands
  todo lists
  todo lists add "Groceries"
  todo items add 1 "Milk"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.DBPath, "db", envOr("TODO_DB", ""), "Path to the database file (default: <user config dir>/todo-cli/db.sqlite)")
	cmd.PersistentFlags().StringVar(&app.LogPath, "log", envOr("TODO_LOG", ""), "Append debug log lines to this file")
	cmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "JSON output for scriptable commands")

	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newItemsCmd(app))

	return cmd
}

func runTUI(ctx context.Context, app *App) error {
	db, err := app.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return tui.Run(db, openDebugLog(app.LogPath))
}

func (a *App) dbPath() (string, error) {
	if strings.TrimSpace(a.DBPath) != "" {
		return a.DBPath, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving default db path: %w", err)
	}
	return filepath.Join(cfg, "todo-cli", "db.sqlite"), nil
}

func (a *App) openDB(ctx context.Context) (*sql.DB, error) {
	path, err := a.dbPath()
	if err != nil {
		return nil, err
	}
	return todo.Open(ctx, path)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseListID(s string) (todo.ListID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid list id %q", s)
	}
	return todo.ListID(n), nil
}

func parseItemID(s string) (todo.ItemID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return todo.ItemID(n), nil
}
