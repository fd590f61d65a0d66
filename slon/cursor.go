package slon

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// cursor is a forward-only read position over SLON source text.
type cursor struct {
	text string
	pos  int
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.text)
}

// peek returns the current byte, or 0 at end of input.
func (c *cursor) peek() byte {
	if c.pos >= len(c.text) {
		return 0
	}
	return c.text[c.pos]
}

// at reports whether the current byte is ch.
func (c *cursor) at(ch byte) bool {
	return c.pos < len(c.text) && c.text[c.pos] == ch
}

func (c *cursor) skipSpace() {
	for c.pos < len(c.text) && isSpace(c.text[c.pos]) {
		c.pos++
	}
}

// boundaryAt reports whether a token ending at offset end is properly
// terminated: end of input, a delimiter, or whitespace.
func (c *cursor) boundaryAt(end int) bool {
	return end >= len(c.text) || isTerminator(c.text[end])
}

// errorf builds a DecodeError located at offset.
func (c *cursor) errorf(offset int, format string, args ...any) *DecodeError {
	return &DecodeError{
		Message: fmt.Sprintf(format, args...),
		Pos:     positionAt(c.text, offset),
	}
}

// positionAt converts a byte offset into a Position.
func positionAt(text string, offset int) Position {
	if offset > len(text) {
		offset = len(text)
	}
	prefix := text[:offset]
	line := strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return Position{
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(prefix[lineStart:]) + 1,
	}
}
