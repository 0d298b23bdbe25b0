package parse

import (
	"context"

	"github.com/slowlang/espresso/compiler/ast"
)

// AssertMessage is used by assert statements without an explicit message.
const AssertMessage = "assertion failed"

func (p *Parser) parseStmt(ctx context.Context) (x ast.Stmt, err error) {
	err = p.SkipSpaces()
	if err != nil {
		return nil, err
	}

	pos := p.pos()

	if tr := p.tr; tr.If("parse_stmt") {
		defer func() {
			tr.Printw("statement", "row", pos.Row, "col", pos.Col, "type", stmtType(x), "err", err)
		}()
	}

	if p.Match("{") {
		return p.parseBlockAt(ctx, pos)
	}

	for _, kw := range []struct {
		kw    string
		parse func(context.Context, ast.Base) (ast.Stmt, error)
	}{
		{"let", p.parseDecl},
		{"if", p.parseIf},
		{"assert", p.parseAssert},
		{"return", p.parseReturn},
		{"import", p.parseImport},
		{"export", p.parseExport},
	} {
		ok, err := p.MatchKeyword(kw.kw)
		if err != nil {
			return nil, err
		}

		if ok {
			return kw.parse(ctx, pos)
		}
	}

	if p.Match("$") {
		op, args, err := p.parseInline(ctx)
		if err != nil {
			return nil, err
		}

		err = p.ExpectSpaced(";")
		if err != nil {
			return nil, err
		}

		return &ast.InlineStmt{Base: pos, Op: op, Args: args}, nil
	}

	e, err := p.parseExpr(ctx)
	if err != nil {
		return nil, err
	}

	err = p.ExpectSpaced(";")
	if err != nil {
		return nil, err
	}

	return &ast.ExprStmt{Base: pos, Expr: e}, nil
}

func (p *Parser) parseBlockAt(ctx context.Context, pos ast.Base) (ast.Stmt, error) {
	b, err := p.parseBlock(ctx, "}")
	if err != nil {
		return nil, err
	}

	b.Base = pos

	return b, nil
}

func (p *Parser) parseIf(ctx context.Context, pos ast.Base) (x ast.Stmt, err error) {
	err = p.ExpectSpaced("(")
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpr(ctx)
	if err != nil {
		return nil, err
	}

	err = p.ExpectSpaced(")")
	if err != nil {
		return nil, err
	}

	then, err := p.parseStmt(ctx)
	if err != nil {
		return nil, err
	}

	s := &ast.If{
		Base: pos,
		Cond: cond,
		Then: then,
		Else: &ast.Block{Base: pos},
	}

	ok, err := p.MatchKeyword("else")
	if err != nil {
		return nil, err
	}

	if ok {
		s.Else, err = p.parseStmt(ctx)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// parseAssert turns assert(test[, msg]); into an if statement aborting in its else branch.
func (p *Parser) parseAssert(ctx context.Context, pos ast.Base) (x ast.Stmt, err error) {
	err = p.ExpectSpaced("(")
	if err != nil {
		return nil, err
	}

	test, err := p.parseExpr(ctx)
	if err != nil {
		return nil, err
	}

	var msg ast.Expr = &ast.String{Base: pos, Value: AssertMessage}

	ok, err := p.MatchSpaced(",")
	if err != nil {
		return nil, err
	}

	if ok {
		msg, err = p.parseExpr(ctx)
		if err != nil {
			return nil, err
		}
	}

	err = p.ExpectSpaced(")")
	if err != nil {
		return nil, err
	}

	err = p.ExpectSpaced(";")
	if err != nil {
		return nil, err
	}

	return &ast.If{
		Base: pos,
		Cond: test,
		Then: &ast.Block{Base: pos},
		Else: &ast.InlineStmt{
			Base: pos,
			Op:   "abort",
			Args: []ast.Expr{msg},
		},
	}, nil
}

func (p *Parser) parseReturn(ctx context.Context, pos ast.Base) (x ast.Stmt, err error) {
	ok, err := p.MatchSpaced(";")
	if err != nil {
		return nil, err
	}

	if ok {
		return &ast.Return{
			Base:  pos,
			Value: &ast.Ident{Base: pos, Name: "null"},
		}, nil
	}

	val, err := p.parseExpr(ctx)
	if err != nil {
		return nil, err
	}

	err = p.ExpectSpaced(";")
	if err != nil {
		return nil, err
	}

	return &ast.Return{Base: pos, Value: val}, nil
}

func stmtType(x ast.Stmt) string {
	switch x.(type) {
	case *ast.Block:
		return "block"
	case *ast.Decl:
		return "decl"
	case *ast.If:
		return "if"
	case *ast.Return:
		return "return"
	case *ast.ExprStmt:
		return "expr"
	case *ast.Import:
		return "import"
	case *ast.Export:
		return "export"
	case *ast.InlineStmt:
		return "inline"
	default:
		return "none"
	}
}
