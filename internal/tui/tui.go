package tui

import (
	"database/sql"

	tea "github.com/charmbracelet/bubbletea"
)

// Run drives the interactive UI over an open todo database until the user
// quits or a failure reaches the terminal error state. The returned error is
// that failure; a clean exit returns nil. Terminal modes are restored by
// bubbletea before Run returns, including on panic.
func Run(db *sql.DB, logf func(format string, args ...any)) error {
	applyColorProfilePreference()
	applyThemePreference()

	final, err := tea.NewProgram(newAppModel(db, logf), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(appModel); ok && m.phase == phaseError {
		return m.err
	}
	return nil
}
