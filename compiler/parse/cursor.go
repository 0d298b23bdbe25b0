package parse

import (
	"tlog.app/go/loc"
	"tlog.app/go/tlog"
)

type (
	// Cursor reads source text one character at a time
	// keeping track of the row and column of the next character.
	Cursor struct {
		Name string

		b []byte
		i int

		Row int
		Col int

		tr tlog.Span
	}
)

// EOFChar is returned by Peek past the end of input.
const EOFChar = 0

func NewCursor(name string, text []byte) *Cursor {
	return &Cursor{
		Name: name,
		b:    text,
		Row:  1,
		Col:  1,
	}
}

func (c *Cursor) Offset() int { return c.i }

func (c *Cursor) Peek() byte {
	if c.i >= len(c.b) {
		return EOFChar
	}

	return c.b[c.i]
}

// PeekAt returns the character off bytes ahead of the current one.
func (c *Cursor) PeekAt(off int) byte {
	if c.i+off >= len(c.b) {
		return EOFChar
	}

	return c.b[c.i+off]
}

func (c *Cursor) EOF() bool {
	return c.i >= len(c.b)
}

// Read consumes the current character.
func (c *Cursor) Read() (byte, error) {
	if c.EOF() {
		return 0, c.errorf(InvalidCharacter, "unexpected end of input")
	}

	ch := c.b[c.i]

	if !validChar(ch) {
		return 0, c.errorf(InvalidCharacter, "invalid character: 0x%02x", ch)
	}

	c.advance(ch)

	return ch, nil
}

// Next reports whether s is next in the input without consuming it.
func (c *Cursor) Next(s string) bool {
	if len(c.b)-c.i < len(s) {
		return false
	}

	return string(c.b[c.i:c.i+len(s)]) == s
}

// Match consumes s if it's next in the input.
func (c *Cursor) Match(s string) bool {
	if !c.Next(s) {
		return false
	}

	if tr := c.tr; tr.If("scan") {
		tr.Printw("match", "s", s, "row", c.Row, "col", c.Col, "from", loc.Callers(1, 3))
	}

	for i := 0; i < len(s); i++ {
		c.advance(s[i])
	}

	return true
}

// Expect consumes s or fails with ExpectedToken.
func (c *Cursor) Expect(s string) error {
	if c.Match(s) {
		return nil
	}

	return c.errorf(ExpectedToken, "expected to find: %q", s)
}

func (c *Cursor) advance(ch byte) {
	c.i++

	if ch == '\n' {
		c.Row++
		c.Col = 1
	} else {
		c.Col++
	}
}

func (c *Cursor) errorf(kind Kind, format string, args ...any) *SyntaxError {
	return newSyntaxError(c.Name, c.Row, c.Col, kind, format, args...)
}

func validChar(ch byte) bool {
	return ch >= 0x20 && ch <= 0x7e || ch == '\n' || ch == '\t' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isIdentChar(ch byte) bool {
	return isAlpha(ch) || isDigit(ch) || ch == '_'
}
