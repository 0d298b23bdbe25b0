package parse

import (
	"strings"

	"github.com/nikandfor/hacked/hfmt"
)

type (
	Kind int

	// SyntaxError is the only error kind the parser returns.
	SyntaxError struct {
		Name string
		Row  int
		Col  int

		Kind Kind
		Msg  string
	}
)

const (
	_ Kind = iota
	InvalidCharacter
	ExpectedToken
	IntegerTooLong
	UnterminatedString
	InvalidIdentifier
	InvalidExpression
)

func newSyntaxError(name string, row, col int, kind Kind, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Name: name,
		Row:  row,
		Col:  col,
		Kind: kind,
		Msg:  string(hfmt.Appendf(nil, format, args...)),
	}
}

func (e *SyntaxError) Error() string {
	return string(hfmt.Appendf(nil, "%v:%d:%d: %v", e.Name, e.Row, e.Col, e.Msg))
}

// Snippet renders the offending line of text with a caret under the column.
func (e *SyntaxError) Snippet(text []byte) string {
	lines := strings.Split(string(text), "\n")

	row := e.Row
	if row < 1 {
		row = 1
	}
	if row > len(lines) {
		row = len(lines)
	}

	line := strings.TrimRight(lines[row-1], "\r")

	col := e.Col
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	b := hfmt.Appendf(nil, "syntax error at %d:%d: %v\n\n", e.Row, e.Col, e.Msg)

	st := len(b)
	b = hfmt.Appendf(b, "%4d | ", row)
	prefix := len(b) - st

	b = append(b, line...)
	b = append(b, '\n')

	for i := 0; i < prefix+col-1; i++ {
		b = append(b, ' ')
	}

	b = append(b, "^\n"...)

	return string(b)
}

func (k Kind) String() string {
	switch k {
	case InvalidCharacter:
		return "InvalidCharacter"
	case ExpectedToken:
		return "ExpectedToken"
	case IntegerTooLong:
		return "IntegerTooLong"
	case UnterminatedString:
		return "UnterminatedString"
	case InvalidIdentifier:
		return "InvalidIdentifier"
	case InvalidExpression:
		return "InvalidExpression"
	default:
		return string(hfmt.Appendf(nil, "Kind(%d)", int(k)))
	}
}
