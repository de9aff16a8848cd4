package webapi

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// sqliteMagic is the first 16 bytes of every plaintext SQLite database.
var sqliteMagic = []byte("SQLite format 3\x00")

// IsEncrypted reports whether the database file on disk lacks the plaintext
// SQLite header. A freshly created empty file counts as not encrypted.
func (b *Bridge) IsEncrypted() (bool, error) {
	f, err := os.Open(b.path)
	if err != nil {
		return false, fmt.Errorf("opening database file: %w", err)
	}
	defer f.Close()

	header := make([]byte, len(sqliteMagic))
	n, err := io.ReadFull(f, header)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		// Shorter than a header means SQLite has not written a page yet.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading database header: %w", err)
	}
	return !bytes.Equal(header[:n], sqliteMagic), nil
}
