package parse

import (
	"context"

	"github.com/slowlang/espresso/compiler/ast"
)

// parseList reads comma separated items up to end.
// A trailing comma before end is allowed.
func (p *Parser) parseList(end string, item func() error) error {
	for {
		ok, err := p.MatchSpaced(end)
		if err != nil {
			return err
		}

		if ok {
			return nil
		}

		err = item()
		if err != nil {
			return err
		}

		ok, err = p.MatchSpaced(end)
		if err != nil {
			return err
		}

		if ok {
			return nil
		}

		err = p.ExpectSpaced(",")
		if err != nil {
			return err
		}
	}
}

func (p *Parser) parseExprList(ctx context.Context, end string) (l []ast.Expr, err error) {
	err = p.parseList(end, func() error {
		x, err := p.parseExpr(ctx)
		if err != nil {
			return err
		}

		l = append(l, x)

		return nil
	})

	return l, err
}

func (p *Parser) parseIdentList(end string) (l []string, err error) {
	err = p.parseList(end, func() error {
		name, err := p.parseIdentSpaced()
		if err != nil {
			return err
		}

		l = append(l, name)

		return nil
	})

	return l, err
}
