package parse

import (
	"github.com/slowlang/espresso/compiler/ast"
)

// parseString reads a string literal body after its opening quote.
// Characters are taken as is, there are no escape sequences.
func (p *Parser) parseString(pos ast.Base, end byte) (x *ast.String, err error) {
	var s []byte

	for {
		if p.EOF() {
			return nil, p.errorf(UnterminatedString, "end of input inside string literal")
		}

		ch, err := p.Read()
		if err != nil {
			return nil, err
		}

		if ch == end {
			break
		}

		if ch == '\r' || ch == '\n' {
			return nil, p.errorf(UnterminatedString, "newline in string literal")
		}

		s = append(s, ch)
	}

	return &ast.String{
		Base:  pos,
		Value: string(s),
	}, nil
}

func (p *Parser) parseIdent() (name string, err error) {
	if c := p.Peek(); c != '_' && !isAlpha(c) {
		return "", p.errorf(InvalidIdentifier, "invalid first character for identifier: %q", c)
	}

	st := p.Offset()

	for isIdentChar(p.Peek()) {
		p.advance(p.Peek())
	}

	return string(p.b[st:p.Offset()]), nil
}

func (p *Parser) parseIdentSpaced() (name string, err error) {
	err = p.SkipSpaces()
	if err != nil {
		return "", err
	}

	return p.parseIdent()
}
