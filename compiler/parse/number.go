package parse

import (
	"github.com/slowlang/espresso/compiler/ast"
)

// MaxIntDigits is the longest integer literal accepted.
const MaxIntDigits = 64

func (p *Parser) parseNum() (x ast.Expr, err error) {
	pos := p.pos()
	st := p.Offset()

	if !isDigit(p.Peek()) {
		return nil, p.errorf(InvalidExpression, "expected digit")
	}

	for isDigit(p.Peek()) {
		p.advance(p.Peek())
	}

	if c := p.Peek(); c == '.' || c == 'e' {
		return p.parseFloat(pos, st)
	}

	lit := string(p.b[st:p.Offset()])

	if len(lit) > MaxIntDigits {
		return nil, p.errorf(IntegerTooLong, "int is too long: %d digits", len(lit))
	}

	return &ast.Int{
		Base:  pos,
		Value: lit,
	}, nil
}

// parseFloat continues a number literal with its fraction and exponent.
// Floats must end with the f type marker which is not part of the value.
func (p *Parser) parseFloat(pos ast.Base, st int) (x ast.Expr, err error) {
	dot := false
	exp := false

loop:
	for {
		switch c := p.Peek(); {
		case isDigit(c):
		case c == '.' && !dot && !exp:
			dot = true
		case c == 'e' && !exp:
			exp = true

			p.advance(c)

			if c := p.Peek(); c == '-' || c == '+' {
				p.advance(c)
			}

			continue
		default:
			break loop
		}

		p.advance(p.Peek())
	}

	lit := string(p.b[st:p.Offset()])

	err = p.Expect("f")
	if err != nil {
		return nil, err
	}

	return &ast.Float{
		Base:  pos,
		Value: lit,
	}, nil
}
