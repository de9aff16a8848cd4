package tui

// textBuffer is a single-line edit buffer with a cursor offset in runes.
// The cursor may sit one past the last rune (append position).
type textBuffer struct {
	runes  []rune
	cursor int
}

func newTextBuffer(s string) textBuffer {
	rs := []rune(s)
	return textBuffer{runes: rs, cursor: len(rs)}
}

func (b textBuffer) String() string { return string(b.runes) }

func (b *textBuffer) insert(r rune) {
	b.runes = append(b.runes[:b.cursor], append([]rune{r}, b.runes[b.cursor:]...)...)
	b.cursor++
}

// backspace deletes the rune before the cursor.
func (b *textBuffer) backspace() {
	if b.cursor == 0 {
		return
	}
	b.cursor--
	b.runes = append(b.runes[:b.cursor], b.runes[b.cursor+1:]...)
}

// deleteForward deletes the rune at the cursor; a no-op at end of line.
func (b *textBuffer) deleteForward() {
	if b.cursor >= len(b.runes) {
		return
	}
	b.runes = append(b.runes[:b.cursor], b.runes[b.cursor+1:]...)
}

func (b *textBuffer) left() {
	if b.cursor > 0 {
		b.cursor--
	}
}

func (b *textBuffer) right() {
	if b.cursor < len(b.runes) {
		b.cursor++
	}
}
