package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"rlint/internal/source"
)

// cursor is a byte-oriented scanner over one file's content.
type cursor struct {
	file *source.File
	pos  uint32
}

func newCursor(file *source.File) cursor {
	return cursor{file: file}
}

func (c *cursor) EOF() bool {
	return int(c.pos) >= len(c.file.Content)
}

// Peek returns the current byte, or 0 at EOF.
func (c *cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.file.Content[c.pos]
}

// PeekAt returns the byte n positions ahead, or 0 past EOF.
func (c *cursor) PeekAt(n uint32) byte {
	idx := c.pos + n
	if int(idx) >= len(c.file.Content) {
		return 0
	}
	return c.file.Content[idx]
}

func (c *cursor) Bump() {
	if !c.EOF() {
		c.pos++
	}
}

// Eat consumes the current byte if it equals b.
func (c *cursor) Eat(b byte) bool {
	if c.Peek() == b {
		c.pos++
		return true
	}
	return false
}

// Mark records the current offset for SpanFrom.
func (c *cursor) Mark() uint32 {
	return c.pos
}

func (c *cursor) SpanFrom(start uint32) source.Span {
	return source.Span{File: c.file.ID, Start: start, End: c.pos}
}

func (c *cursor) text(sp source.Span) string {
	return string(c.file.Content[sp.Start:sp.End])
}

func mustLen(content []byte) uint32 {
	n, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("file length overflow: %w", err))
	}
	return n
}
