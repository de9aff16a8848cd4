package cli

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// openDebugLog returns a formatter that appends timestamped lines to path.
// An empty path (or an unopenable file) yields a no-op, so callers can log
// unconditionally.
func openDebugLog(path string) func(format string, args ...any) {
	path = strings.TrimSpace(path)
	if path == "" {
		return func(string, ...any) {}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return func(string, ...any) {}
	}
	return func(format string, args ...any) {
		ts := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
		fmt.Fprintf(f, "%s %s\n", ts, fmt.Sprintf(format, args...))
	}
}
