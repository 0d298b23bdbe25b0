package parse

import (
	"context"

	"github.com/slowlang/espresso/compiler/ast"
)

func (p *Parser) parseExpr(ctx context.Context) (ast.Expr, error) {
	return p.parseExprPrec(ctx, 0)
}

func (p *Parser) parseAtom(ctx context.Context) (x ast.Expr, err error) {
	err = p.SkipSpaces()
	if err != nil {
		return nil, err
	}

	pos := p.pos()

	if isDigit(p.Peek()) {
		return p.parseNum()
	}

	if p.Match(`"`) {
		return p.parseString(pos, '"')
	}

	if p.Match(`'`) {
		return p.parseString(pos, '\'')
	}

	if p.Match("[") {
		elems, err := p.parseExprList(ctx, "]")
		if err != nil {
			return nil, err
		}

		return &ast.Array{Base: pos, Elems: elems}, nil
	}

	if p.Match("{") {
		return p.parseObject(ctx, pos)
	}

	if p.Match("(") {
		x, err = p.parseExpr(ctx)
		if err != nil {
			return nil, err
		}

		err = p.ExpectSpaced(")")
		if err != nil {
			return nil, err
		}

		return x, nil
	}

	if op := p.matchOp(0, true); op != nil {
		x, err = p.parseExprPrec(ctx, op.Prec)
		if err != nil {
			return nil, err
		}

		return &ast.Unary{Base: pos, Op: op, Expr: x}, nil
	}

	if isAlpha(p.Peek()) || p.Peek() == '_' {
		ok, err := p.MatchKeyword("fun")
		if err != nil {
			return nil, err
		}

		if ok {
			return p.parseFunc(ctx, pos)
		}

		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		return &ast.Ident{Base: pos, Name: name}, nil
	}

	if p.Match("$") {
		op, args, err := p.parseInline(ctx)
		if err != nil {
			return nil, err
		}

		return &ast.Inline{Base: pos, Op: op, Args: args}, nil
	}

	return nil, p.errorf(InvalidExpression, "invalid expression: unexpected %s", describe(p.Peek()))
}

func (p *Parser) parseObject(ctx context.Context, pos ast.Base) (x *ast.Object, err error) {
	x = &ast.Object{Base: pos}

	err = p.parseList("}", func() error {
		name, err := p.parseIdentSpaced()
		if err != nil {
			return err
		}

		err = p.ExpectSpaced(":")
		if err != nil {
			return err
		}

		val, err := p.parseExpr(ctx)
		if err != nil {
			return err
		}

		x.Names = append(x.Names, name)
		x.Values = append(x.Values, val)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return x, nil
}

// parseFunc parses a function literal after the fun keyword.
func (p *Parser) parseFunc(ctx context.Context, pos ast.Base) (f *ast.Func, err error) {
	err = p.ExpectSpaced("(")
	if err != nil {
		return nil, err
	}

	params, err := p.parseIdentList(")")
	if err != nil {
		return nil, err
	}

	err = p.ExpectSpaced("{")
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock(ctx, "}")
	if err != nil {
		return nil, err
	}

	return &ast.Func{
		Base:   pos,
		Params: params,
		Body:   body,
	}, nil
}

// parseInline parses the name and arguments of an inline op after the $ sign.
func (p *Parser) parseInline(ctx context.Context) (op string, args []ast.Expr, err error) {
	op, err = p.parseIdent()
	if err != nil {
		return "", nil, err
	}

	err = p.Expect("(")
	if err != nil {
		return "", nil, err
	}

	args, err = p.parseExprList(ctx, ")")
	if err != nil {
		return "", nil, err
	}

	return op, args, nil
}

func describe(c byte) string {
	if c == EOFChar {
		return "end of input"
	}

	return "'" + string(c) + "'"
}
