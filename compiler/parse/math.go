package parse

import (
	"context"

	"github.com/slowlang/espresso/compiler/ast"
)

// parseExprPrec is precedence climbing.
// It takes an atom and then keeps extending it with operators
// binding at least as tight as minPrec, so the result is left-leaning
// for left-associative operators and right-leaning for right-associative ones.
func (p *Parser) parseExprPrec(ctx context.Context, minPrec int) (x ast.Expr, err error) {
	x, err = p.parseAtom(ctx)
	if err != nil {
		return nil, err
	}

	for {
		err = p.SkipSpaces()
		if err != nil {
			return nil, err
		}

		op := p.matchOp(minPrec, false)
		if op == nil {
			return x, nil
		}

		if op == ast.OpCall {
			args, err := p.parseExprList(ctx, op.Close)
			if err != nil {
				return nil, err
			}

			x = &ast.Call{
				Base: x.Position(),
				Func: x,
				Args: args,
			}

			continue
		}

		next := op.Prec

		if op.Assoc == ast.Left {
			if op.Close != "" {
				next = 0
			} else {
				next = op.Prec + 1
			}
		}

		r, err := p.parseExprPrec(ctx, next)
		if err != nil {
			return nil, err
		}

		x = &ast.Binary{
			Base:  x.Position(),
			Op:    op,
			Left:  x,
			Right: r,
		}

		if op.Close != "" {
			err = p.ExpectSpaced(op.Close)
			if err != nil {
				return nil, err
			}
		}
	}
}

// matchOp consumes the operator at the cursor if it has at least minPrec precedence.
// In prefix position only right-associative unary operators are considered,
// otherwise only binary ones and the call.
func (p *Parser) matchOp(minPrec int, prefix bool) *ast.Op {
	op := p.peekOp(prefix)
	if op == nil || op.Prec < minPrec {
		return nil
	}

	if prefix && (op.Arity != 1 || op.Assoc != ast.Right) {
		return nil
	}

	if !prefix && op.Arity == 1 {
		return nil
	}

	p.Match(op.Symbol)

	return op
}

func (p *Parser) peekOp(prefix bool) *ast.Op {
	for _, op := range ast.Ops {
		if prefix && op == ast.OpSub || !prefix && op == ast.OpNeg {
			continue
		}

		if op.Keyword() {
			if p.nextKeyword(op.Symbol) {
				return op
			}

			continue
		}

		if p.Next(op.Symbol) {
			return op
		}
	}

	return nil
}
